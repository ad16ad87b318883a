package game_test

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/oust/board"
	"github.com/domino14/oust/game"
	"github.com/domino14/oust/move"
	"github.com/domino14/oust/testhelpers"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func newGame(t *testing.T, side int) *game.Game {
	rules, err := game.NewGameRules(testhelpers.DefaultConfig, side)
	if err != nil {
		t.Fatal(err)
	}
	g, err := game.NewGame(rules)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestEmptyBoard(t *testing.T) {
	is := is.New(t)
	g := newGame(t, 3)
	moves := g.LegalMoves()
	is.Equal(len(moves), 19)
	is.Equal(moves[0], move.Move{Row: 0, Col: 2})
	is.Equal(g.OnTurn(), board.Black)
	is.True(!g.Terminal())
	is.Equal(g.Winner(), board.NoColor)
}

func TestNonCapturingEndsTurn(t *testing.T) {
	is := is.New(t)
	g := newGame(t, 3)
	pos, outcome, err := g.Apply(move.Move{Row: 0, Col: 2})
	is.NoErr(err)
	is.Equal(outcome, move.TurnEnded)
	is.Equal(pos.OnTurn(), board.White)
	is.Equal(pos.Occupant(0, 2), board.Black)
	// the original is untouched
	is.Equal(g.Occupant(0, 2), board.NoColor)
	is.Equal(g.OnTurn(), board.Black)
}

func TestCaptureKeepsMover(t *testing.T) {
	is := is.New(t)
	g := testhelpers.GameFromDiagram(3, `
		  . . .
		 . X O .
		. . . . .
		 . . . .
		  O . .`, board.Black)

	pos, outcome, err := g.Apply(move.Move{Row: 2, Col: 2})
	is.NoErr(err)
	is.Equal(outcome, move.SameMover)
	is.Equal(pos.OnTurn(), board.Black)
	is.Equal(pos.Occupant(1, 3), board.NoColor) // captured
	is.Equal(pos.Occupant(4, 0), board.White)   // not touching, survives
	is.True(!pos.Terminal())

	ng := pos.(*game.Game)
	scratch, err := game.NewGameFromBoard(g.Rules(), ng.Board(), board.Black)
	is.NoErr(err)
	is.Equal(ng.Hash(), scratch.Hash())
}

func TestWipeOutEndsGame(t *testing.T) {
	is := is.New(t)
	g := testhelpers.GameFromDiagram(3, `
		  . . .
		 . X O .
		. . . . .
		 . . . .
		  . . .`, board.Black)

	pos, outcome, err := g.Apply(move.Move{Row: 2, Col: 2})
	is.NoErr(err)
	is.Equal(outcome, move.SameMover)
	is.True(pos.Terminal())
	is.Equal(pos.Winner(), board.Black)
	is.Equal(len(pos.LegalMoves()), 0)

	_, _, err = pos.Apply(move.Move{Row: 4, Col: 0})
	var ime *game.IllegalMoveError
	is.True(errors.As(err, &ime))
}

func TestContactWithoutCaptureIsIllegal(t *testing.T) {
	is := is.New(t)
	g := testhelpers.GameFromDiagram(3, `
		  . . .
		 . X O .
		. . O . .
		 . . . .
		  . . .`, board.Black)

	// joins X into a group of two, which touches an O group of two
	_, _, err := g.Apply(move.Move{Row: 1, Col: 1})
	var ime *game.IllegalMoveError
	is.True(errors.As(err, &ime))
	is.Equal(ime.Move, move.Move{Row: 1, Col: 1})

	for _, m := range g.LegalMoves() {
		is.True(m != move.Move{Row: 1, Col: 1})
	}
}

func TestOccupiedAndOffBoard(t *testing.T) {
	is := is.New(t)
	g := newGame(t, 3)
	pos, _, err := g.Apply(move.Move{Row: 2, Col: 2})
	is.NoErr(err)
	var ime *game.IllegalMoveError
	_, _, err = pos.Apply(move.Move{Row: 2, Col: 2})
	is.True(errors.As(err, &ime))
	_, _, err = pos.Apply(move.Move{Row: 0, Col: 0})
	is.True(errors.As(err, &ime))
}

func TestNoLegalMovesLoses(t *testing.T) {
	is := is.New(t)
	g := testhelpers.GameFromDiagram(2, `
		 . .
		. X .
		 . .`, board.Black)
	is.Equal(len(g.LegalMoves()), 0)
	is.True(g.Terminal())
	is.Equal(g.Winner(), board.White)

	// white has plenty to do in the same stones
	w := testhelpers.GameFromDiagram(2, `
		 . .
		. X .
		 . .`, board.White)
	is.True(!w.Terminal())
	is.Equal(len(w.LegalMoves()), 6)
}

func TestRecordRoundTrip(t *testing.T) {
	is := is.New(t)
	g := newGame(t, 3)
	rec := game.NewRecord(3)
	turn, err := move.ParseTurn([]string{"c1", "a3", "e1"})
	is.NoErr(err)
	end, err := g.PlayTurn(turn)
	is.NoErr(err)
	rec.Add(turn...)

	var buf bytes.Buffer
	is.NoErr(rec.Write(&buf))
	loaded, err := game.ReadRecord(&buf)
	is.NoErr(err)
	is.Equal(loaded.Moves, []string{"c1", "a3", "e1"})

	replayed, err := loaded.Replay(g.Rules())
	is.NoErr(err)
	is.Equal(replayed.Hash(), end.Hash())
	is.Equal(replayed.OnTurn(), board.White)
}

func TestRecordFile(t *testing.T) {
	is := is.New(t)
	path := t.TempDir() + "/game.yaml"
	rec := game.NewRecord(4)
	rec.Add(move.Move{Row: 3, Col: 3})
	is.NoErr(game.SaveRecordFile(path, rec))
	loaded, err := game.LoadRecordFile(path)
	is.NoErr(err)
	is.Equal(loaded.Size, 4)
	is.Equal(loaded.Moves, []string{"d4"})
}
