package game

import (
	"errors"
	"fmt"

	"github.com/domino14/oust/board"
	"github.com/domino14/oust/move"
)

// Position is what the search engine needs from a game. Apply must never
// modify the receiver.
type Position interface {
	LegalMoves() []move.Move
	Apply(m move.Move) (Position, move.Outcome, error)
	Terminal() bool
	// Winner is NoColor unless Terminal.
	Winner() board.Color
	OnTurn() board.Color
	Occupant(row, col int) board.Color
	// Extent is the side of the square grid Occupant can be asked about.
	Extent() int
	// Hash depends only on the stones on the board and the side to move.
	Hash() uint64
}

var (
	ErrGameOver     = errors.New("game is over")
	ErrNoLegalMoves = errors.New("no legal moves")
)

// IllegalMoveError is returned by Apply for any placement the rules forbid.
type IllegalMoveError struct {
	Move   move.Move
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %v: %s", e.Move, e.Reason)
}

func illegal(m move.Move, reason string) error {
	return &IllegalMoveError{Move: m, Reason: reason}
}
