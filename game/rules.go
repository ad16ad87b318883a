package game

import (
	"fmt"

	"github.com/domino14/oust/board"
	"github.com/domino14/oust/cache"
	"github.com/domino14/oust/config"
	"github.com/domino14/oust/zobrist"
)

// GameRules bundles what every game on a given board size shares.
type GameRules struct {
	cfg     *config.Config
	side    int
	zobrist *zobrist.Zobrist
}

func (r *GameRules) Config() *config.Config {
	return r.cfg
}

func (r *GameRules) Side() int {
	return r.side
}

func (r *GameRules) Zobrist() *zobrist.Zobrist {
	return r.zobrist
}

// NewGameRules reuses the Zobrist tables for the board size and seed.
func NewGameRules(cfg *config.Config, side int) (*GameRules, error) {
	if side < board.MinSide || side > board.MaxSide {
		return nil, fmt.Errorf("%w: %d", board.ErrBadSide, side)
	}
	dim := 2*side - 1
	z := cache.ZobristTables(dim, cfg.GetString(config.ConfigZobristSeed))
	return &GameRules{cfg: cfg, side: side, zobrist: z}, nil
}

// scratch is reused by every position descended from the same NewGame call.
// Positions from one lineage must therefore stay on one goroutine.
type scratch struct {
	visited  []bool
	members  []int
	stack    []int
	captured []int
	nbrs     []int
}

func newScratch(dim int) *scratch {
	return &scratch{visited: make([]bool, dim*dim)}
}

// examine decides whether color may be placed at the empty on-board cell idx.
// If collect is set, captured holds every enemy stone the placement removes.
func (s *scratch) examine(b *board.Board, idx int, color board.Color, collect bool) (legal, capture bool, captured []int) {
	friendly := false
	s.nbrs = b.Neighbors(idx, s.nbrs[:0])
	for _, n := range s.nbrs {
		if b.GetIdx(n) == color {
			friendly = true
			break
		}
	}
	if !friendly {
		return true, false, nil
	}

	clear(s.visited)
	b.SetIdx(idx, color)
	defer b.SetIdx(idx, board.NoColor)

	s.members, s.stack = b.Group(idx, s.visited, s.members[:0], s.stack)
	size := len(s.members)
	enemy := color.Opponent()
	touched := 0
	s.captured = s.captured[:0]
	for _, m := range s.members {
		s.nbrs = b.Neighbors(m, s.nbrs[:0])
		for _, n := range s.nbrs {
			if b.GetIdx(n) != enemy || s.visited[n] {
				continue
			}
			before := len(s.captured)
			s.captured, s.stack = b.Group(n, s.visited, s.captured, s.stack)
			if len(s.captured)-before >= size {
				return false, false, nil
			}
			touched++
		}
	}
	if touched == 0 {
		return false, false, nil
	}
	if collect {
		captured = append([]int(nil), s.captured...)
	}
	return true, true, captured
}
