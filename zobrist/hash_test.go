package zobrist

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/oust/board"
)

func TestSeededKeysAreDeterministic(t *testing.T) {
	is := is.New(t)
	z1 := &Zobrist{}
	z1.Initialize(9, "oust")
	z2 := &Zobrist{}
	z2.Initialize(9, "oust")
	z3 := &Zobrist{}
	z3.Initialize(9, "other")
	is.Equal(z1.posTable, z2.posTable)
	is.Equal(z1.whiteToMove, z2.whiteToMove)
	is.True(z1.whiteToMove != z3.whiteToMove)
}

func TestIncrementalMatchesScratch(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize(9, "oust")
	b, err := board.MakeBoard(5)
	is.NoErr(err)

	h := z.Hash(b, board.Black)
	is.Equal(h, uint64(0))

	idx := b.Index(4, 4)
	b.SetIdx(idx, board.Black)
	h = z.ToggleStone(h, idx, board.Black)
	h = z.FlipTurn(h)
	is.Equal(h, z.Hash(b, board.White))

	// removing the stone again restores the empty key
	b.SetIdx(idx, board.NoColor)
	h = z.ToggleStone(h, idx, board.Black)
	h = z.FlipTurn(h)
	is.Equal(h, z.Hash(b, board.Black))
	is.Equal(h, uint64(0))
}

func TestSideToMoveChangesKey(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize(5, "")
	b, err := board.MakeBoard(3)
	is.NoErr(err)
	b.Set(2, 2, board.White)
	is.True(z.Hash(b, board.Black) != z.Hash(b, board.White))
}
