package negamax

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/oust/config"
	"github.com/domino14/oust/game"
	"github.com/domino14/oust/move"
)

type Mode int

const (
	FixedDepth Mode = iota
	IterativeDeepening
)

func (m Mode) String() string {
	if m == FixedDepth {
		return "fixed"
	}
	return "iterative"
}

// SearchConfig picks between a fixed-depth search and iterative deepening
// under a time budget. A zero TimeBudget means no deadline: the search then
// runs until the context is done, OnTimeExpired is called, the depth ceiling
// is hit, or a certain win is found.
type SearchConfig struct {
	Mode       Mode
	Depth      int
	TimeBudget time.Duration
}

func SearchConfigFromConfig(cfg *config.Config) SearchConfig {
	sc := SearchConfig{
		Mode:       IterativeDeepening,
		Depth:      cfg.GetInt(config.ConfigSearchDepth),
		TimeBudget: cfg.GetDuration(config.ConfigSearchTime),
	}
	if cfg.GetString(config.ConfigSearchMode) == "fixed" {
		sc.Mode = FixedDepth
	}
	return sc
}

// Iteration records one completed iterative-deepening pass.
type Iteration struct {
	Depth int
	Score int
	// Windowed is set if the pass started with an aspiration window, and
	// Researched if it then had to be run again unbounded.
	Windowed   bool
	Researched bool
	Nodes      uint64
}

// Decision is the turn chosen for a position and how it was found.
type Decision struct {
	Turn       []move.Move
	Score      int
	Depth      int
	Nodes      uint64
	Iterations []Iteration
	// Forced is set when the position had a single legal move and no search
	// was done. Fallback is set when the turn came from SafeSequence.
	Forced   bool
	Fallback bool
}

func (d Decision) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "turn %s; score %d; depth %d; nodes %d",
		move.TurnString(d.Turn), d.Score, d.Depth, d.Nodes)
	if d.Forced {
		sb.WriteString("; forced")
	}
	if d.Fallback {
		sb.WriteString("; fallback")
	}
	if len(d.Iterations) > 0 {
		sb.WriteString("; iterations ")
		sb.WriteString(strings.Join(lo.Map(d.Iterations, func(it Iteration, _ int) string {
			s := fmt.Sprintf("%d:%d", it.Depth, it.Score)
			if it.Researched {
				s += "*"
			}
			return s
		}), " "))
	}
	return sb.String()
}

// Decide picks a turn for the side to move. It never fails: when the search
// produces nothing usable the turn comes from SafeSequence, and the turn is
// empty only if the position has no legal move at all.
func (s *Solver) Decide(ctx context.Context, pos game.Position, cfg SearchConfig) Decision {
	s.prepare(pos)
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		log.Warn().Msg("decide-called-without-legal-moves")
		return Decision{}
	}
	if len(moves) == 1 {
		return Decision{Turn: SafeSequence(pos), Forced: true}
	}

	tstart := time.Now()
	var d Decision
	if cfg.Mode == FixedDepth {
		depth := max(1, cfg.Depth)
		res := s.search(pos, depth, -Infinity, Infinity, 0)
		d = Decision{Turn: res.Sequence, Score: res.Score, Depth: depth}
	} else {
		d = s.iterativelyDeepen(ctx, pos, cfg.TimeBudget)
	}
	d.Nodes = s.nodes.Load()
	d.Turn = s.finishTurn(pos, d.Turn)
	if len(d.Turn) == 0 {
		d.Turn = SafeSequence(pos)
		d.Fallback = true
	}

	stats := s.ttable.Stats()
	log.Info().
		Str("mode", cfg.Mode.String()).
		Str("turn", move.TurnString(d.Turn)).
		Int("score", d.Score).
		Int("depth", d.Depth).
		Uint64("nodes", d.Nodes).
		Uint64("ttable-created", stats.Created).
		Uint64("ttable-lookups", stats.Lookups).
		Uint64("ttable-hits", stats.Hits).
		Uint64("ttable-t2collisions", stats.T2Collisions).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("decide-returning")
	return d
}

func (s *Solver) iterativelyDeepen(ctx context.Context, pos game.Position, budget time.Duration) Decision {
	if budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}
	s.ctx = ctx
	s.timeBounded = true
	defer func() {
		s.timeBounded = false
		s.ctx = context.Background()
	}()

	var d Decision
	g := &errgroup.Group{}
	done := make(chan struct{})

	g.Go(func() error {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		var lastNodes uint64
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				nodes := s.nodes.Load()
				log.Debug().Uint64("nps", nodes-lastNodes).Msg("nodes-per-second")
				lastNodes = nodes
			}
		}
	})

	g.Go(func() error {
		defer close(done)
		var best []move.Move
		prevScore := 0
		for depth := 1; depth <= s.params.MaxDepth && !s.aborted(); depth++ {
			log.Debug().Int("plies", depth).Msg("deepening-iteratively")
			it := Iteration{Depth: depth}
			alpha, beta := -Infinity, Infinity
			if depth > 2 && best != nil {
				alpha, beta = prevScore-s.params.AspirationWindow, prevScore+s.params.AspirationWindow
				it.Windowed = true
			}
			res := s.search(pos, depth, alpha, beta, 0)
			if it.Windowed && !s.aborted() && (res.Score <= alpha || res.Score >= beta) {
				log.Debug().Int("plies", depth).Int("score", res.Score).Msg("aspiration-window-failed")
				res = s.search(pos, depth, -Infinity, Infinity, 0)
				it.Researched = true
			}
			if s.aborted() {
				break
			}
			it.Score = res.Score
			it.Nodes = s.nodes.Load()
			d.Iterations = append(d.Iterations, it)
			if len(res.Sequence) > 0 {
				best = res.Sequence
				prevScore = res.Score
				d.Turn = best
				d.Score = prevScore
				d.Depth = depth
			}
			log.Info().Int("score", res.Score).Int("ply", depth).
				Str("pv", move.TurnString(res.Sequence)).Msg("best-val")
			if res.Score > CertainWin {
				break
			}
		}
		return nil
	})

	// neither goroutine returns an error
	_ = g.Wait()
	return d
}

// finishTurn replays turn from pos. A turn that stops while the mover could
// still place is completed with SafeSequence; a turn that fails to replay is
// dropped.
func (s *Solver) finishTurn(pos game.Position, turn []move.Move) []move.Move {
	if len(turn) == 0 {
		return nil
	}
	cur := pos
	outcome := move.TurnEnded
	for _, m := range turn {
		var err error
		cur, outcome, err = cur.Apply(m)
		if err != nil {
			log.Warn().Err(err).Str("turn", move.TurnString(turn)).Msg("search-turn-does-not-replay")
			return nil
		}
	}
	if outcome == move.SameMover && !cur.Terminal() {
		rest := SafeSequence(cur)
		log.Debug().Str("turn", move.TurnString(turn)).Str("rest", move.TurnString(rest)).
			Msg("completing-partial-turn")
		return append(append([]move.Move(nil), turn...), rest...)
	}
	return turn
}
