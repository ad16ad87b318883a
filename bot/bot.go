// Package bot answers move requests over NATS. A request carries a board
// size and the placements played so far; the reply is the turn the engine
// would play.
package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/oust/config"
	"github.com/domino14/oust/game"
	"github.com/domino14/oust/move"
	"github.com/domino14/oust/negamax"
)

// Request is the JSON body of a move request. Mode, Depth and TimeMs
// override the bot's configured search when set.
type Request struct {
	Size   int      `json:"size"`
	Moves  []string `json:"moves"`
	Mode   string   `json:"mode,omitempty"`
	Depth  int      `json:"depth,omitempty"`
	TimeMs int      `json:"time_ms,omitempty"`
}

type Response struct {
	Moves []string `json:"moves,omitempty"`
	Score int      `json:"score"`
	Depth int      `json:"depth"`
	Nodes uint64   `json:"nodes"`
	Error string   `json:"error,omitempty"`
}

var errGameOver = errors.New("game is already over")

type Bot struct {
	config *config.Config

	// requests are handled one at a time; each board size keeps its own
	// solver so that its transposition table survives between requests
	mu      sync.Mutex
	rules   map[int]*game.GameRules
	solvers map[int]*negamax.Solver
}

func NewBot(cfg *config.Config) *Bot {
	return &Bot{
		config:  cfg,
		rules:   map[int]*game.GameRules{},
		solvers: map[int]*negamax.Solver{},
	}
}

func errorResponse(message string, err error) *Response {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.Error())
	}
	return &Response{Error: msg}
}

func (bot *Bot) rulesFor(size int) (*game.GameRules, error) {
	if r, ok := bot.rules[size]; ok {
		return r, nil
	}
	r, err := game.NewGameRules(bot.config, size)
	if err != nil {
		return nil, err
	}
	bot.rules[size] = r
	return r, nil
}

func (bot *Bot) solverFor(size int) *negamax.Solver {
	s, ok := bot.solvers[size]
	if !ok {
		s = negamax.NewSolverFromConfig(bot.config)
		bot.solvers[size] = s
	}
	return s
}

// Deserialize decodes a request and replays it into a position.
func (bot *Bot) Deserialize(data []byte) (*game.Game, *Request, error) {
	req := &Request{}
	if err := json.Unmarshal(data, req); err != nil {
		return nil, nil, err
	}
	if req.Size == 0 {
		req.Size = bot.config.GetInt(config.ConfigBoardSize)
	}
	rules, err := bot.rulesFor(req.Size)
	if err != nil {
		return nil, nil, err
	}
	rec := &game.Record{Size: req.Size, Moves: req.Moves}
	g, err := rec.Replay(rules)
	if err != nil {
		return nil, nil, err
	}
	return g, req, nil
}

func (bot *Bot) searchConfig(req *Request) (negamax.SearchConfig, error) {
	sc := negamax.SearchConfigFromConfig(bot.config)
	switch req.Mode {
	case "":
	case "fixed":
		sc.Mode = negamax.FixedDepth
	case "iterative":
		sc.Mode = negamax.IterativeDeepening
	default:
		return sc, config.ErrBadSearchMode
	}
	if req.Depth > 0 {
		sc.Depth = req.Depth
	}
	if req.TimeMs > 0 {
		sc.TimeBudget = time.Duration(req.TimeMs) * time.Millisecond
	}
	return sc, nil
}

// Handle answers one request. It never fails; problems are reported in the
// response's Error field.
func (bot *Bot) Handle(ctx context.Context, data []byte) *Response {
	bot.mu.Lock()
	defer bot.mu.Unlock()

	g, req, err := bot.Deserialize(data)
	if err != nil {
		return errorResponse("Could not parse request", err)
	}
	if g.Terminal() {
		return errorResponse("Could not generate a turn", errGameOver)
	}
	sc, err := bot.searchConfig(req)
	if err != nil {
		return errorResponse("Could not parse request", err)
	}
	d := bot.solverFor(req.Size).Decide(ctx, g, sc)
	log.Info().Str("turn", move.TurnString(d.Turn)).Int("score", d.Score).
		Int("depth", d.Depth).Uint64("nodes", d.Nodes).Msg("generated-turn")
	resp := &Response{Score: d.Score, Depth: d.Depth, Nodes: d.Nodes}
	for _, m := range d.Turn {
		resp.Moves = append(resp.Moves, m.String())
	}
	return resp
}

// Connect dials the configured NATS server, backing off between attempts.
func Connect(ctx context.Context, url string) (*nats.Conn, error) {
	var nc *nats.Conn
	err := retry.Do(
		func() error {
			var err error
			nc, err = nats.Connect(url)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(8),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Err(err).Uint("n", n).Str("url", url).Msg("nats-connect-failed-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
	return nc, err
}

// Serve subscribes to the configured subject and answers requests until ctx
// is done.
func (bot *Bot) Serve(ctx context.Context) error {
	nc, err := Connect(ctx, bot.config.GetString(config.ConfigNatsURL))
	if err != nil {
		return err
	}
	defer nc.Close()
	subject := bot.config.GetString(config.ConfigBotSubject)

	_, err = nc.Subscribe(subject, func(m *nats.Msg) {
		log.Info().Msgf("RECV: %d bytes", len(m.Data))
		resp := bot.Handle(ctx, m.Data)
		data, err := json.Marshal(resp)
		if err != nil {
			// Should never happen, ideally, but we need to do something sensible here.
			m.Respond([]byte(err.Error()))
			return
		}
		if err := m.Respond(data); err != nil {
			log.Err(err).Msg("respond-failed")
		}
	})
	if err != nil {
		return err
	}
	if err := nc.Flush(); err != nil {
		return err
	}
	if err := nc.LastError(); err != nil {
		return err
	}
	log.Info().Msgf("Listening on [%s]", subject)

	<-ctx.Done()
	return nc.Drain()
}
