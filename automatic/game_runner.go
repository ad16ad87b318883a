// Package automatic plays the engine against itself, logging every turn so
// that settings can be compared over many games.
package automatic

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/oust/board"
	"github.com/domino14/oust/config"
	"github.com/domino14/oust/game"
	"github.com/domino14/oust/move"
	"github.com/domino14/oust/negamax"
)

// GameRunner plays full games between two solvers, one per color. Each
// solver has its own transposition table, kept across the games it plays.
type GameRunner struct {
	config  *config.Config
	rules   *game.GameRules
	solvers [2]*negamax.Solver
	search  negamax.SearchConfig
	logchan chan<- []string
	// RandomOpening makes the first placement of each game random.
	RandomOpening bool
}

// GameSummary is the outcome of one game.
type GameSummary struct {
	GameID     string
	Winner     board.Color
	Turns      int
	Placements int
	Nodes      uint64
	Record     *game.Record
}

func (s GameSummary) csvRow() []string {
	return []string{s.GameID, s.Winner.String(), strconv.Itoa(s.Turns),
		strconv.Itoa(s.Placements), strconv.FormatUint(s.Nodes, 10)}
}

// NewGameRunner sets up solvers and rules from the config. logchan may be
// nil if turns need not be logged.
func NewGameRunner(logchan chan<- []string, cfg *config.Config) (*GameRunner, error) {
	rules, err := game.NewGameRules(cfg, cfg.GetInt(config.ConfigBoardSize))
	if err != nil {
		return nil, err
	}
	r := &GameRunner{
		config:        cfg,
		rules:         rules,
		search:        negamax.SearchConfigFromConfig(cfg),
		logchan:       logchan,
		RandomOpening: true,
	}
	for i := range r.solvers {
		r.solvers[i] = negamax.NewSolverFromConfig(cfg)
	}
	return r, nil
}

func (r *GameRunner) solverFor(c board.Color) *negamax.Solver {
	return r.solvers[c-1]
}

// PlayGame plays one game to the end. If ctx is done between turns the game
// is abandoned and ctx's error returned.
func (r *GameRunner) PlayGame(ctx context.Context) (GameSummary, error) {
	g, err := game.NewGame(r.rules)
	if err != nil {
		return GameSummary{}, err
	}
	sum := GameSummary{GameID: uuid.NewString(), Record: game.NewRecord(r.rules.Side())}

	for turn := 1; !g.Terminal(); turn++ {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		mover := g.OnTurn()
		var d negamax.Decision
		if turn == 1 && r.RandomOpening {
			moves := g.LegalMoves()
			d.Turn = []move.Move{moves[frand.Intn(len(moves))]}
		} else {
			d = r.solverFor(mover).Decide(ctx, g, r.search)
		}
		if len(d.Turn) == 0 {
			return sum, fmt.Errorf("no turn for %v at turn %d: %w", mover, turn, game.ErrNoLegalMoves)
		}
		g, err = g.PlayTurn(d.Turn)
		if err != nil {
			return sum, fmt.Errorf("turn %d: %w", turn, err)
		}
		sum.Turns = turn
		sum.Placements += len(d.Turn)
		sum.Nodes += d.Nodes
		sum.Record.Add(d.Turn...)

		if r.logchan != nil {
			r.logchan <- []string{
				sum.GameID,
				strconv.Itoa(turn),
				mover.String(),
				move.TurnString(d.Turn),
				strconv.Itoa(d.Score),
				strconv.Itoa(d.Depth),
				strconv.FormatUint(d.Nodes, 10),
			}
		}
	}
	sum.Winner = g.Winner()
	sum.Record.Winner = sum.Winner.String()
	log.Debug().Str("game-id", sum.GameID).Str("winner", sum.Winner.String()).
		Int("turns", sum.Turns).Msg("game-over")
	return sum, nil
}
