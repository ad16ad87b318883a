package negamax

import (
	"github.com/domino14/oust/board"
	"github.com/domino14/oust/config"
	"github.com/domino14/oust/game"
)

// Evaluator scores a non-terminal position for the root player.
type Evaluator interface {
	Score(pos game.Position, root board.Color) int
}

type EvalWeights struct {
	Scale    int
	OwnGroup int
	OppGroup int
	Material int
	Mobility int
}

func DefaultEvalWeights() EvalWeights {
	return EvalWeights{Scale: 10, OwnGroup: 1, OppGroup: 2, Material: 5, Mobility: 10}
}

func EvalWeightsFromConfig(cfg *config.Config) EvalWeights {
	return EvalWeights{
		Scale:    cfg.GetInt(config.ConfigEvalScale),
		OwnGroup: cfg.GetInt(config.ConfigEvalOwnGroup),
		OppGroup: cfg.GetInt(config.ConfigEvalOppGroup),
		Material: cfg.GetInt(config.ConfigEvalMaterial),
		Mobility: cfg.GetInt(config.ConfigEvalMobility),
	}
}

// GroupEvaluator rewards big connected groups: every group of size g counts
// OwnGroup·g² for the root player and OppGroup·g² against it. On top of that
// come a per-stone material term for both sides and a mobility bonus for the
// number of legal moves of the side to move:
//
//	Scale·(own groups + own material) − Scale·(opp groups + opp material) + Mobility·moves
//
// The scratch buffers make a GroupEvaluator unsafe for concurrent use.
type GroupEvaluator struct {
	weights EvalWeights
	visited []bool
	stack   []int
}

func NewGroupEvaluator(w EvalWeights) *GroupEvaluator {
	return &GroupEvaluator{weights: w}
}

func (e *GroupEvaluator) Weights() EvalWeights {
	return e.weights
}

// groupSize flood-fills from (row, col) over stones of color c and returns
// the group's size.
func (e *GroupEvaluator) groupSize(pos game.Position, ext, row, col int, c board.Color) int {
	e.visited[row*ext+col] = true
	e.stack = append(e.stack[:0], row*ext+col)
	n := 0
	for len(e.stack) > 0 {
		cur := e.stack[len(e.stack)-1]
		e.stack = e.stack[:len(e.stack)-1]
		n++
		r, cl := cur/ext, cur%ext
		for _, d := range board.Directions {
			nr, nc := r+d[0], cl+d[1]
			if nr < 0 || nc < 0 || nr >= ext || nc >= ext {
				continue
			}
			idx := nr*ext + nc
			if e.visited[idx] || pos.Occupant(nr, nc) != c {
				continue
			}
			e.visited[idx] = true
			e.stack = append(e.stack, idx)
		}
	}
	return n
}

func (e *GroupEvaluator) Score(pos game.Position, root board.Color) int {
	ext := pos.Extent()
	if len(e.visited) != ext*ext {
		e.visited = make([]bool, ext*ext)
	} else {
		clear(e.visited)
	}
	w := e.weights
	var own, opp, ownStones, oppStones int
	for row := 0; row < ext; row++ {
		for col := 0; col < ext; col++ {
			if e.visited[row*ext+col] {
				continue
			}
			c := pos.Occupant(row, col)
			if c == board.NoColor {
				continue
			}
			g := e.groupSize(pos, ext, row, col, c)
			if c == root {
				own += w.OwnGroup * g * g
				ownStones += g
			} else {
				opp += w.OppGroup * g * g
				oppStones += g
			}
		}
	}
	own += w.Material * ownStones
	opp += w.Material * oppStones
	mobility := w.Mobility * len(pos.LegalMoves())
	return w.Scale*own - w.Scale*opp + mobility
}
