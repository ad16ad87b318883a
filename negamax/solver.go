// Package negamax chooses turns for Oust with principal variation search
// over variable-length turns, a transposition table, killer and history
// move ordering, and iterative deepening with aspiration windows.
package negamax

import (
	"context"
	"sort"
	"sync/atomic"

	"github.com/domino14/oust/board"
	"github.com/domino14/oust/config"
	"github.com/domino14/oust/game"
	"github.com/domino14/oust/move"
)

const (
	// Infinity bounds the unbounded window. It is far beyond any score.
	Infinity   = 1 << 30
	WinScore   = 1_000_000
	CertainWin = 900_000
)

// rootSalt separates table entries by root player, since every stored score
// is from the root player's point of view.
var rootSalt = [3]uint64{0, 0, 0x9e3779b97f4a7c15}

// SearchParams are the tuning knobs of the search.
type SearchParams struct {
	AspirationWindow int
	MaxDepth         int
	HistoryDecay     int
	// NullWindowSameTurn also probes same-turn continuations with a null
	// window once the first candidate has been searched.
	NullWindowSameTurn bool
}

func DefaultSearchParams() SearchParams {
	return SearchParams{
		AspirationWindow: 50,
		MaxDepth:         60,
		HistoryDecay:     8,
	}
}

func SearchParamsFromConfig(cfg *config.Config) SearchParams {
	return SearchParams{
		AspirationWindow:   cfg.GetInt(config.ConfigAspirationWindow),
		MaxDepth:           cfg.GetInt(config.ConfigMaxDepth),
		HistoryDecay:       cfg.GetInt(config.ConfigHistoryDecay),
		NullWindowSameTurn: cfg.GetBool(config.ConfigNullWindowSameTurn),
	}
}

// Solver owns everything one search needs. A Solver must not be used from
// two goroutines at once.
type Solver struct {
	ttable    *TranspositionTable
	evaluator Evaluator
	params    SearchParams

	killers killerTable
	history historyTable

	root        board.Color
	timeBounded bool
	ctx         context.Context
	expired     atomic.Bool
	nodes       atomic.Uint64
}

// NewSolver builds a solver around an existing table. A nil table gets a
// fresh default-sized one, and a nil evaluator the default GroupEvaluator.
func NewSolver(tt *TranspositionTable, ev Evaluator, params SearchParams) *Solver {
	if tt == nil {
		tt = NewTranspositionTable(DefaultTTSizePower)
	}
	if ev == nil {
		ev = NewGroupEvaluator(DefaultEvalWeights())
	}
	return &Solver{
		ttable:    tt,
		evaluator: ev,
		params:    params,
		ctx:       context.Background(),
	}
}

// NewSolverFromConfig sizes the table either by tt-memory-fraction, when
// set, or by tt-size-power.
func NewSolverFromConfig(cfg *config.Config) *Solver {
	tt := &TranspositionTable{}
	if frac := cfg.GetFloat64(config.ConfigTTMemoryFraction); frac > 0 {
		tt.Reset(frac)
	} else {
		tt.resize(cfg.GetInt(config.ConfigTTSizePower))
	}
	return NewSolver(tt, NewGroupEvaluator(EvalWeightsFromConfig(cfg)), SearchParamsFromConfig(cfg))
}

func (s *Solver) TranspositionTable() *TranspositionTable {
	return s.ttable
}

func (s *Solver) Params() SearchParams {
	return s.params
}

func (s *Solver) SetParams(p SearchParams) {
	s.params = p
}

// Nodes is the number of nodes visited by the last decision.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// OnTimeExpired makes an in-flight time-bounded decision stop and return
// what it has. Fixed-depth searches ignore it.
func (s *Solver) OnTimeExpired() {
	s.expired.Store(true)
}

// prepare resets per-decision state: killers are cleared and history is
// softened.
func (s *Solver) prepare(pos game.Position) {
	s.root = pos.OnTurn()
	s.killers.clear()
	s.history.resize(pos.Extent())
	s.history.decay(s.params.HistoryDecay)
	s.nodes.Store(0)
	s.expired.Store(false)
}

func (s *Solver) aborted() bool {
	if !s.timeBounded {
		return false
	}
	return s.expired.Load() || s.ctx.Err() != nil
}

func (s *Solver) ttKey(pos game.Position) uint64 {
	return pos.Hash() ^ rootSalt[s.root]
}

func (s *Solver) evaluate(pos game.Position) int {
	return s.evaluator.Score(pos, s.root)
}

// orderMoves returns a copy of moves with the table hint first, then this
// ply's killers, then the rest by descending history weight. Ties keep
// their enumeration order.
func (s *Solver) orderMoves(moves []move.Move, ply int, hint move.Move, hasHint bool) []move.Move {
	ordered := make([]move.Move, len(moves))
	copy(ordered, moves)
	rank := func(m move.Move) int {
		switch {
		case hasHint && m == hint:
			return 0
		case s.killers.isKiller(ply, m):
			return 1
		}
		return 2
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, rj := rank(ordered[i]), rank(ordered[j])
		if ri != rj {
			return ri < rj
		}
		return s.history.get(ordered[i]) > s.history.get(ordered[j])
	})
	return ordered
}
