package board

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestGeometry(t *testing.T) {
	for side := MinSide; side <= 7; side++ {
		b, err := MakeBoard(side)
		assert.NoError(t, err)
		n := 0
		for r := 0; r < b.Dim(); r++ {
			for c := 0; c < b.Dim(); c++ {
				if b.OnBoard(r, c) {
					n++
				}
			}
		}
		assert.Equal(t, b.NumCells(), n, "side %d", side)
	}
}

func TestBadSide(t *testing.T) {
	is := is.New(t)
	_, err := MakeBoard(1)
	is.True(err != nil)
	_, err = MakeBoard(MaxSide + 1)
	is.True(err != nil)
}

func TestNeighbors(t *testing.T) {
	is := is.New(t)
	b, _ := MakeBoard(3)
	center := b.Index(2, 2)
	is.Equal(len(b.Neighbors(center, nil)), 6)
	corner := b.Index(0, 2)
	is.Equal(len(b.Neighbors(corner, nil)), 3)
	edge := b.Index(0, 3)
	is.Equal(len(b.Neighbors(edge, nil)), 4)
}

func TestGroupAndCounts(t *testing.T) {
	is := is.New(t)
	b, _ := MakeBoard(3)
	b.Set(2, 2, Black)
	b.Set(2, 3, Black)
	b.Set(1, 3, Black)
	b.Set(4, 0, Black)
	b.Set(3, 1, White)
	is.Equal(b.Count(Black), 4)
	is.Equal(b.Count(White), 1)

	visited := make([]bool, b.Dim()*b.Dim())
	members, _ := b.Group(b.Index(2, 2), visited, nil, nil)
	is.Equal(len(members), 3)
	// already visited cells are skipped
	members, _ = b.Group(b.Index(1, 3), visited, nil, nil)
	is.Equal(len(members), 0)

	b.Set(2, 2, NoColor)
	is.Equal(b.Count(Black), 3)
	cp := b.Copy()
	cp.Set(0, 2, White)
	is.Equal(b.Get(0, 2), NoColor)
	is.Equal(cp.Count(White), 2)
}

func TestOpponent(t *testing.T) {
	is := is.New(t)
	is.Equal(Black.Opponent(), White)
	is.Equal(White.Opponent(), Black)
	is.Equal(NoColor.Opponent(), NoColor)
}
