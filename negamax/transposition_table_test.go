package negamax

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/oust/move"
)

func TestTTableEntry(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable(16)
	is.Equal(tt.Size(), 1<<16)

	seq := []move.Move{{Row: 2, Col: 3}, {Row: 4, Col: 1}}
	tt.store(9409641586937047728, TableEntry{score: 12, depth: 23, flag: TTUpper, sequence: seq})

	te, ok := tt.lookup(9409641586937047728)
	is.True(ok)
	is.Equal(te.depth, 23)
	is.Equal(te.flag, uint8(TTUpper))
	is.Equal(te.score, 12)
	hint, ok := te.hint()
	is.True(ok)
	is.Equal(hint, move.Move{Row: 2, Col: 3})

	is.Equal(tt.Stats().T2Collisions, uint64(0))
	// same slot, different key
	_, ok = tt.lookup(9409641586937047728 + 1<<40)
	is.True(!ok)
	is.Equal(tt.Stats().T2Collisions, uint64(1))

	// an empty slot is a miss but not a collision
	_, ok = tt.lookup(9409641586937047728 + 1)
	is.True(!ok)
	is.Equal(tt.Stats().Lookups, uint64(3))
	is.Equal(tt.Stats().Hits, uint64(1))
	is.Equal(tt.Stats().T2Collisions, uint64(1))
}

func TestTTableOverwrite(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable(MinTTSizePower)
	k1 := uint64(0xabc0000000000005)
	k2 := uint64(0x1230000000000005)
	tt.store(k1, TableEntry{score: 1, depth: 9, flag: TTExact})
	// shallower, but still replaces
	tt.store(k2, TableEntry{score: 2, depth: 1, flag: TTLower})
	_, ok := tt.lookup(k1)
	is.True(!ok)
	te, ok := tt.lookup(k2)
	is.True(ok)
	is.Equal(te.score, 2)
	is.Equal(tt.Stats().Created, uint64(2))
}

func TestTTableSizing(t *testing.T) {
	assert.Equal(t, 1<<MinTTSizePower, NewTranspositionTable(1).Size())
	tt := NewTranspositionTable(12)
	tt.store(77, TableEntry{score: 5, depth: 1, flag: TTExact})
	tt.resize(12)
	_, ok := tt.lookup(77)
	assert.False(t, ok, "resize empties the table")
	assert.Equal(t, uint64(0), tt.Stats().Created)

	tt.Reset(0)
	assert.Equal(t, 1<<MinTTSizePower, tt.Size())
}
