package negamax

import (
	"github.com/domino14/oust/game"
	"github.com/domino14/oust/move"
)

// SafeSequence plays the first legal move until the turn is over. It is the
// answer of last resort and is always a legal turn when pos has a legal move.
func SafeSequence(pos game.Position) []move.Move {
	mover := pos.OnTurn()
	var seq []move.Move
	cur := pos
	for {
		moves := cur.LegalMoves()
		if len(moves) == 0 {
			break
		}
		next, outcome, err := cur.Apply(moves[0])
		if err != nil {
			break
		}
		seq = append(seq, moves[0])
		if outcome == move.TurnEnded || next.Terminal() || next.OnTurn() != mover {
			break
		}
		cur = next
	}
	return seq
}
