package cache

import (
	"testing"

	"github.com/matryer/is"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/oust/zobrist"
)

func TestZobristTablesAreShared(t *testing.T) {
	is := is.New(t)
	z := ZobristTables(7, "cache-test")
	is.Equal(z.BoardDim(), 7)
	is.True(ZobristTables(7, "cache-test") == z)
	is.True(ZobristTables(7, "cache-test-2") != z)
	is.True(ZobristTables(9, "cache-test") != z)
	is.Equal(ZobristTables(9, "cache-test").BoardDim(), 9)
}

func TestZobristTablesConcurrent(t *testing.T) {
	is := is.New(t)
	const n = 8
	got := make([]*zobrist.Zobrist, n)
	g := &errgroup.Group{}
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			got[i] = ZobristTables(11, "cache-concurrent")
			return nil
		})
	}
	is.NoErr(g.Wait())
	for i := 1; i < n; i++ {
		is.True(got[i] == got[0])
	}
}
