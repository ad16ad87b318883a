package negamax

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/oust/move"
)

func TestKillers(t *testing.T) {
	is := is.New(t)
	var k killerTable
	a, b, c := move.Move{Row: 1, Col: 1}, move.Move{Row: 2, Col: 2}, move.Move{Row: 3, Col: 3}
	k.store(4, a)
	k.store(4, a)
	is.True(k.isKiller(4, a))
	is.True(!k.isKiller(3, a))
	k.store(4, b)
	is.True(k.isKiller(4, a))
	is.True(k.isKiller(4, b))
	// the oldest falls out
	k.store(4, c)
	is.True(!k.isKiller(4, a))
	is.True(k.isKiller(4, b))
	is.True(k.isKiller(4, c))
	// the repeated store did not duplicate a
	is.Equal(k[4][0].m, c)
	is.Equal(k[4][1].m, b)

	k.store(MaxPly+3, a)
	is.True(!k.isKiller(MaxPly+3, a))
	k.clear()
	is.True(!k.isKiller(4, c))
}
