package move

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestFromString(t *testing.T) {
	is := is.New(t)
	m, err := FromString("c4")
	is.NoErr(err)
	is.Equal(m, Move{Row: 3, Col: 2})
	is.Equal(m.String(), "c4")

	m, err = FromString("K11")
	is.NoErr(err)
	is.Equal(m, Move{Row: 10, Col: 10})

	for _, bad := range []string{"", "4c", "c0", "cc4", "c"} {
		_, err = FromString(bad)
		is.True(errors.Is(err, ErrBadCoords))
	}
}

func TestTurnString(t *testing.T) {
	is := is.New(t)
	turn, err := ParseTurn([]string{"a3", "c1", "e5"})
	is.NoErr(err)
	is.Equal(TurnString(turn), "a3 c1 e5")
}
