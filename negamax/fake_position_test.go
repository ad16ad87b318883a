package negamax

import (
	"github.com/cespare/xxhash"

	"github.com/domino14/oust/board"
	"github.com/domino14/oust/game"
	"github.com/domino14/oust/move"
)

// treeSpec describes a synthetic game tree. Positions are named by the path
// of child indices from the root, one letter per placement ("" is the root,
// "ba" is the first child of the second child).
type treeSpec struct {
	branching func(path string) int
	// sameMover reports whether the placement that produced path kept the
	// mover. Nil means every placement ends the turn.
	sameMover func(path string) bool
	// terminal reports game over and the winner. Nil means never.
	terminal func(path string) (bool, board.Color)
	// fails reports whether applying the placement that produces path fails.
	fails func(path string) bool
}

type treePos struct {
	spec  *treeSpec
	path  string
	mover board.Color
}

func newTree(spec *treeSpec) *treePos {
	return &treePos{spec: spec, mover: board.Black}
}

func moveFor(path string, i int) move.Move {
	return move.Move{Row: len(path), Col: i}
}

func (p *treePos) isTerminal() (bool, board.Color) {
	if p.spec.terminal == nil {
		return false, board.NoColor
	}
	return p.spec.terminal(p.path)
}

func (p *treePos) LegalMoves() []move.Move {
	if t, _ := p.isTerminal(); t {
		return nil
	}
	n := p.spec.branching(p.path)
	moves := make([]move.Move, n)
	for i := range moves {
		moves[i] = moveFor(p.path, i)
	}
	return moves
}

func (p *treePos) Apply(m move.Move) (game.Position, move.Outcome, error) {
	if m.Row != len(p.path) || m.Col < 0 || m.Col >= p.spec.branching(p.path) {
		return nil, move.TurnEnded, &game.IllegalMoveError{Move: m, Reason: "not in tree"}
	}
	childPath := p.path + string(rune('a'+m.Col))
	if p.spec.fails != nil && p.spec.fails(childPath) {
		return nil, move.TurnEnded, &game.IllegalMoveError{Move: m, Reason: "scripted failure"}
	}
	child := &treePos{spec: p.spec, path: childPath, mover: p.mover}
	if p.spec.sameMover != nil && p.spec.sameMover(childPath) {
		return child, move.SameMover, nil
	}
	child.mover = p.mover.Opponent()
	return child, move.TurnEnded, nil
}

func (p *treePos) Terminal() bool {
	t, _ := p.isTerminal()
	return t
}

func (p *treePos) Winner() board.Color {
	_, w := p.isTerminal()
	return w
}

func (p *treePos) OnTurn() board.Color              { return p.mover }
func (p *treePos) Occupant(row, col int) board.Color { return board.NoColor }
func (p *treePos) Extent() int                       { return 8 }

func (p *treePos) Hash() uint64 {
	h := xxhash.Sum64String(p.path)
	if p.mover == board.White {
		h = ^h
	}
	return h
}

// scriptedEval scores tree positions by path and remembers what it saw.
type scriptedEval struct {
	f    func(path string) int
	seen []string
}

func (e *scriptedEval) Score(pos game.Position, root board.Color) int {
	p := pos.(*treePos)
	e.seen = append(e.seen, p.path)
	return e.f(p.path)
}

func constBranching(n int) func(string) int {
	return func(string) int { return n }
}

// pathNoise is a deterministic pseudo-random score in [-500, 500).
func pathNoise(path string) int {
	return int(xxhash.Sum64String("eval:"+path)%1000) - 500
}
