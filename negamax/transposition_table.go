package negamax

import (
	"math"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/oust/move"
)

const (
	TTExact = 0x01
	TTLower = 0x02
	TTUpper = 0x03
)

const (
	DefaultTTSizePower = 20
	MinTTSizePower     = 8
	MaxTTSizePower     = 30
)

// approximate bytes per entry, counting the sequence slice header but not
// its backing array.
const entrySize = 48

type TableEntry struct {
	key      uint64
	score    int
	depth    int
	flag     uint8
	sequence []move.Move
}

func (t TableEntry) valid() bool {
	// a table flag is 1, 2, or 3.
	return t.flag != 0
}

// hint is the first move of the stored sequence, if any.
func (t TableEntry) hint() (move.Move, bool) {
	if len(t.sequence) == 0 {
		return move.Move{}, false
	}
	return t.sequence[0], true
}

// TranspositionTable is a fixed-size cache of search results. It is never
// cleared by the search and may be kept across decisions and games. Slots
// are not synchronized; only one solver may search with a table at a time.
type TranspositionTable struct {
	table        []TableEntry
	created      atomic.Uint64
	lookups      atomic.Uint64
	hits         atomic.Uint64
	sizePowerOf2 int
	sizeMask     uint64
	// "type 2" collisions: another position occupies the slot. Full keys
	// are compared, so these never return a wrong entry.
	t2collisions atomic.Uint64
}

// TTStats are counters since the last resize.
type TTStats struct {
	Created      uint64
	Lookups      uint64
	Hits         uint64
	T2Collisions uint64
}

func NewTranspositionTable(sizePowerOf2 int) *TranspositionTable {
	t := &TranspositionTable{}
	t.resize(sizePowerOf2)
	return t
}

func (t *TranspositionTable) resize(sizePowerOf2 int) {
	sizePowerOf2 = max(MinTTSizePower, min(MaxTTSizePower, sizePowerOf2))
	numElems := 1 << sizePowerOf2
	if len(t.table) == numElems {
		clear(t.table)
	} else {
		t.table = make([]TableEntry, numElems)
	}
	t.sizePowerOf2 = sizePowerOf2
	t.sizeMask = uint64(numElems - 1)
	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.t2collisions.Store(0)
}

// Reset sizes the table to the biggest power of two that fits in the given
// fraction of system memory, and empties it.
func (t *TranspositionTable) Reset(fractionOfMemory float64) {
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	power := MinTTSizePower
	if desiredNElems >= 1 {
		power = int(math.Log2(desiredNElems))
	}
	t.resize(power)
	numElems := 1 << t.sizePowerOf2

	log.Info().Int("num-elems", numElems).
		Float64("desired-num-elems", desiredNElems).
		Int("estimated-total-memory-bytes", numElems*entrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("transposition-table-size")
}

func (t *TranspositionTable) lookup(key uint64) (TableEntry, bool) {
	t.lookups.Add(1)
	idx := key & t.sizeMask
	e := t.table[idx]
	if e.key != key || !e.valid() {
		if e.valid() {
			// There is another unrelated node at this position.
			t.t2collisions.Add(1)
		}
		return TableEntry{}, false
	}
	t.hits.Add(1)
	return e, true
}

func (t *TranspositionTable) store(key uint64, tentry TableEntry) {
	tentry.key = key
	// last write wins
	t.table[key&t.sizeMask] = tentry
	t.created.Add(1)
}

func (t *TranspositionTable) Size() int {
	return len(t.table)
}

func (t *TranspositionTable) Stats() TTStats {
	return TTStats{
		Created:      t.created.Load(),
		Lookups:      t.lookups.Load(),
		Hits:         t.hits.Load(),
		T2Collisions: t.t2collisions.Load(),
	}
}
