package zobrist

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
	"lukechampine.com/frand"

	"github.com/domino14/oust/board"
)

const bignum = 1<<63 - 2

// Zobrist hashes Oust positions.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	whiteToMove uint64
	// posTable[cell][color-1]
	posTable [][2]uint64
	boardDim int
}

// seedBytes stretches an arbitrary seed string into the 32 bytes frand wants.
func seedBytes(seed string) []byte {
	out := make([]byte, 32)
	for i := 0; i < 4; i++ {
		h := xxhash.Sum64String(seed + string(rune('0'+i)))
		binary.LittleEndian.PutUint64(out[i*8:], h)
	}
	return out
}

// Initialize fills the key tables for a grid of boardDim x boardDim cells.
// The same seed always gives the same keys; an empty seed gives random keys.
func (z *Zobrist) Initialize(boardDim int, seed string) {
	var next func() uint64
	if seed == "" {
		next = func() uint64 { return frand.Uint64n(bignum) + 1 }
	} else {
		rng := frand.NewCustom(seedBytes(seed), 1024, 12)
		next = func() uint64 { return rng.Uint64n(bignum) + 1 }
	}
	z.boardDim = boardDim
	z.posTable = make([][2]uint64, boardDim*boardDim)
	for i := range z.posTable {
		z.posTable[i][0] = next()
		z.posTable[i][1] = next()
	}
	z.whiteToMove = next()
}

func (z *Zobrist) BoardDim() int {
	return z.boardDim
}

// Hash computes a key from scratch.
func (z *Zobrist) Hash(b *board.Board, onTurn board.Color) uint64 {
	key := uint64(0)
	for i := 0; i < b.Dim()*b.Dim(); i++ {
		c := b.GetIdx(i)
		if c == board.NoColor {
			continue
		}
		key ^= z.posTable[i][c-1]
	}
	if onTurn == board.White {
		key ^= z.whiteToMove
	}
	return key
}

// ToggleStone adds or removes a stone from the key; both are the same XOR.
func (z *Zobrist) ToggleStone(key uint64, idx int, c board.Color) uint64 {
	return key ^ z.posTable[idx][c-1]
}

// FlipTurn hands the move to the other side.
func (z *Zobrist) FlipTurn(key uint64) uint64 {
	return key ^ z.whiteToMove
}
