// Package game implements the rules of Oust, a hexagonal connection game in
// which a capturing placement lets the mover place again.
package game

import (
	"fmt"
	"strings"

	"github.com/domino14/oust/board"
	"github.com/domino14/oust/move"
)

// Game is an immutable Oust position. Apply returns a new Game.
type Game struct {
	rules   *GameRules
	board   *board.Board
	scratch *scratch

	onTurn board.Color
	hash   uint64
	// wipedOut is set when a capture removed the opponent's last stone.
	wipedOut bool

	legal     []move.Move
	legalDone bool
}

// NewGame starts a game on an empty board with Black to move.
func NewGame(rules *GameRules) (*Game, error) {
	b, err := board.MakeBoard(rules.side)
	if err != nil {
		return nil, err
	}
	return NewGameFromBoard(rules, b, board.Black)
}

// NewGameFromBoard sets up an arbitrary position. The board is copied.
func NewGameFromBoard(rules *GameRules, b *board.Board, onTurn board.Color) (*Game, error) {
	if b.Side() != rules.side {
		return nil, fmt.Errorf("board side %d does not match rules side %d", b.Side(), rules.side)
	}
	if onTurn != board.Black && onTurn != board.White {
		return nil, fmt.Errorf("bad side to move: %v", onTurn)
	}
	g := &Game{
		rules:   rules,
		board:   b.Copy(),
		scratch: newScratch(b.Dim()),
		onTurn:  onTurn,
	}
	g.hash = rules.zobrist.Hash(g.board, onTurn)
	return g, nil
}

func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) Rules() *GameRules {
	return g.rules
}

func (g *Game) OnTurn() board.Color {
	return g.onTurn
}

func (g *Game) Hash() uint64 {
	return g.hash
}

func (g *Game) Extent() int {
	return g.board.Dim()
}

func (g *Game) Occupant(row, col int) board.Color {
	return g.board.Get(row, col)
}

// LegalMoves lists legal placements in row-major order. The result is cached
// and must not be modified.
func (g *Game) LegalMoves() []move.Move {
	if g.legalDone {
		return g.legal
	}
	g.legalDone = true
	if g.wipedOut {
		return nil
	}
	dim := g.board.Dim()
	for idx := 0; idx < dim*dim; idx++ {
		row, col := g.board.Coords(idx)
		if !g.board.OnBoard(row, col) || g.board.GetIdx(idx) != board.NoColor {
			continue
		}
		if ok, _, _ := g.scratch.examine(g.board, idx, g.onTurn, false); ok {
			g.legal = append(g.legal, move.Move{Row: row, Col: col})
		}
	}
	return g.legal
}

// Terminal is true once a side has been wiped out or the side to move has
// no legal placement.
func (g *Game) Terminal() bool {
	return g.wipedOut || len(g.LegalMoves()) == 0
}

func (g *Game) Winner() board.Color {
	if g.wipedOut {
		// the capturing side keeps the move
		return g.onTurn
	}
	if len(g.LegalMoves()) == 0 {
		return g.onTurn.Opponent()
	}
	return board.NoColor
}

// Apply places a stone for the side to move.
func (g *Game) Apply(m move.Move) (Position, move.Outcome, error) {
	ng, outcome, err := g.PlayMove(m)
	if err != nil {
		return nil, outcome, err
	}
	return ng, outcome, nil
}

// PlayMove is Apply with a concrete return type.
func (g *Game) PlayMove(m move.Move) (*Game, move.Outcome, error) {
	if g.wipedOut {
		return nil, move.TurnEnded, illegal(m, ErrGameOver.Error())
	}
	if !g.board.OnBoard(m.Row, m.Col) {
		return nil, move.TurnEnded, illegal(m, "off the board")
	}
	idx := g.board.Index(m.Row, m.Col)
	if g.board.GetIdx(idx) != board.NoColor {
		return nil, move.TurnEnded, illegal(m, "cell is occupied")
	}
	ok, capture, captured := g.scratch.examine(g.board, idx, g.onTurn, true)
	if !ok {
		return nil, move.TurnEnded, illegal(m, "touches own stones without capturing")
	}

	z := g.rules.zobrist
	ng := &Game{
		rules:   g.rules,
		board:   g.board.Copy(),
		scratch: g.scratch,
		onTurn:  g.onTurn,
		hash:    g.hash,
	}
	ng.board.SetIdx(idx, g.onTurn)
	ng.hash = z.ToggleStone(ng.hash, idx, g.onTurn)
	if !capture {
		ng.onTurn = g.onTurn.Opponent()
		ng.hash = z.FlipTurn(ng.hash)
		return ng, move.TurnEnded, nil
	}
	enemy := g.onTurn.Opponent()
	for _, c := range captured {
		ng.board.SetIdx(c, board.NoColor)
		ng.hash = z.ToggleStone(ng.hash, c, enemy)
	}
	if ng.board.Count(enemy) == 0 {
		ng.wipedOut = true
	}
	return ng, move.SameMover, nil
}

// PlayTurn applies placements in order and returns the final position.
func (g *Game) PlayTurn(moves []move.Move) (*Game, error) {
	cur := g
	for _, m := range moves {
		next, _, err := cur.PlayMove(m)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func (g *Game) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString(g.board.ToDisplayText())
	fmt.Fprintf(&sb, "black: %d stones, white: %d stones\n",
		g.board.Count(board.Black), g.board.Count(board.White))
	if g.Terminal() {
		fmt.Fprintf(&sb, "game over, %v wins\n", g.Winner())
	} else {
		fmt.Fprintf(&sb, "%v to move\n", g.onTurn)
	}
	return sb.String()
}
