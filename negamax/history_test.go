package negamax

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/oust/move"
)

func TestHistory(t *testing.T) {
	is := is.New(t)
	var h historyTable
	h.resize(5)
	m := move.Move{Row: 2, Col: 3}
	h.add(m, 3)
	h.add(m, 2)
	is.Equal(h.get(m), 13)
	h.add(move.Move{Row: 9, Col: 0}, 4) // off the grid, ignored
	is.Equal(h.get(move.Move{Row: 9, Col: 0}), 0)

	h.decay(8)
	is.Equal(h.get(m), 1)

	// same size keeps the weights
	h.add(m, 4)
	h.resize(5)
	is.Equal(h.get(m), 17)

	// overflow halves everything
	other := move.Move{Row: 0, Col: 0}
	h.add(other, 1000)
	h.weights[h.dim*2+3] = historyOverflow
	h.add(m, 1)
	is.Equal(h.get(m), (historyOverflow+1)/2)
	is.Equal(h.get(other), 1_000_000/2)

	h.resize(7)
	is.Equal(h.get(m), 0)
}

func TestOrderMoves(t *testing.T) {
	is := is.New(t)
	s := newTestSolver(&scriptedEval{f: pathNoise})
	s.history.resize(5)
	moves := []move.Move{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 3}, {Row: 0, Col: 4}}
	s.history.add(moves[4], 10)
	s.history.add(moves[3], 3)
	s.killers.store(2, moves[1])

	ordered := s.orderMoves(moves, 2, moves[2], true)
	is.Equal(ordered, []move.Move{moves[2], moves[1], moves[4], moves[3], moves[0]})
	// the input is left alone
	is.Equal(moves[0], move.Move{Row: 0, Col: 0})

	// killers belong to their ply
	ordered = s.orderMoves(moves, 3, move.Move{}, false)
	is.Equal(ordered, []move.Move{moves[4], moves[3], moves[0], moves[1], moves[2]})
}
