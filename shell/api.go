package shell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/oust/automatic"
	"github.com/domino14/oust/config"
	"github.com/domino14/oust/game"
	"github.com/domino14/oust/move"
	"github.com/domino14/oust/negamax"
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) startGame(rules *game.GameRules, g *game.Game, rec *game.Record) {
	sc.rules = rules
	sc.game = g
	sc.record = rec
	// a new board size means new zobrist keys; an old table would only
	// produce collisions
	sc.solver = nil
}

func (sc *ShellController) getSolver() *negamax.Solver {
	if sc.solver == nil {
		sc.solver = negamax.NewSolverFromConfig(sc.config)
	}
	return sc.solver
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	if sc.busy.Load() {
		return nil, errOustBusy
	}
	size := sc.config.GetInt(config.ConfigBoardSize)
	if len(cmd.args) > 0 {
		var err error
		size, err = strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	rules, err := game.NewGameRules(sc.config, size)
	if err != nil {
		return nil, err
	}
	g, err := game.NewGame(rules)
	if err != nil {
		return nil, err
	}
	sc.startGame(rules, g, game.NewRecord(size))
	return msg(g.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.busy.Load() {
		return nil, errOustBusy
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.busy.Load() {
		return nil, errOustBusy
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: play <cell> [<cell> ...]")
	}
	moves, err := move.ParseTurn(cmd.args)
	if err != nil {
		return nil, err
	}
	g := sc.game
	var outcome move.Outcome
	for _, m := range moves {
		g, outcome, err = g.PlayMove(m)
		if err != nil {
			// nothing is committed unless every placement is legal
			return nil, err
		}
	}
	sc.game = g
	sc.record.Add(moves...)
	out := g.ToDisplayText()
	if outcome == move.SameMover && !g.Terminal() {
		out += "captured; place another stone\n"
	}
	return msg(out), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.busy.Load() {
		return nil, errOustBusy
	}
	if len(sc.record.Moves) == 0 {
		return nil, errors.New("nothing to undo")
	}
	rec := &game.Record{Size: sc.record.Size, Moves: sc.record.Moves[:len(sc.record.Moves)-1]}
	g, err := rec.Replay(sc.rules)
	if err != nil {
		return nil, err
	}
	sc.game = g
	sc.record = rec
	return msg(g.ToDisplayText()), nil
}

type solveParams struct {
	search negamax.SearchConfig
}

func (sc *ShellController) solvePrepare(cmd *shellcmd) (*solveParams, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.game.Terminal() {
		return nil, game.ErrGameOver
	}
	params := &solveParams{search: negamax.SearchConfigFromConfig(sc.config)}
	if mode := cmd.options.String("mode"); mode != "" {
		switch mode {
		case "fixed":
			params.search.Mode = negamax.FixedDepth
		case "iterative":
			params.search.Mode = negamax.IterativeDeepening
		default:
			return nil, config.ErrBadSearchMode
		}
	}
	var err error
	params.search.Depth, err = cmd.options.IntDefault("depth", params.search.Depth)
	if err != nil {
		return nil, err
	}
	if t := cmd.options.String("time"); t != "" {
		params.search.TimeBudget, err = time.ParseDuration(t)
		if err != nil {
			return nil, err
		}
	}
	return params, nil
}

// claimEngine marks the engine busy for one search and installs the cancel
// func that `stop` uses. release must be called once the search is over.
func (sc *ShellController) claimEngine() (ctx context.Context, release func(), err error) {
	if !sc.busy.CompareAndSwap(false, true) {
		return nil, nil, errOustBusy
	}
	ctx, cancel := context.WithCancel(context.Background())
	sc.cancelMu.Lock()
	sc.searchCancel = cancel
	sc.cancelMu.Unlock()
	release = func() {
		sc.cancelMu.Lock()
		sc.searchCancel = nil
		sc.cancelMu.Unlock()
		cancel()
		sc.busy.Store(false)
	}
	return ctx, release, nil
}

// decide searches g and returns the decision without playing it. The caller
// must hold the engine.
func decide(ctx context.Context, solver *negamax.Solver, g *game.Game, params *solveParams) negamax.Decision {
	log.Debug().Str("mode", params.search.Mode.String()).Int("depth", params.search.Depth).
		Dur("time", params.search.TimeBudget).Msg("shell-solve")
	return solver.Decide(ctx, g, params.search)
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 && cmd.args[0] == "stop" {
		return sc.stop(cmd)
	}
	ctx, release, err := sc.claimEngine()
	if err != nil {
		return nil, err
	}
	params, err := sc.solvePrepare(cmd)
	if err != nil {
		release()
		return nil, err
	}
	// nothing else touches the game or the solver until release
	g, solver := sc.game, sc.getSolver()
	go func() {
		defer release()
		d := decide(ctx, solver, g, params)
		sc.showMessage("Best turn: " + d.String())
	}()
	return msg(""), nil
}

func (sc *ShellController) stop(cmd *shellcmd) (*Response, error) {
	sc.cancelMu.Lock()
	defer sc.cancelMu.Unlock()
	if sc.searchCancel == nil {
		return nil, errors.New("no search to stop")
	}
	sc.searchCancel()
	return msg(""), nil
}

// goTurn lets the engine play a whole turn for the side to move.
func (sc *ShellController) goTurn(cmd *shellcmd) (*Response, error) {
	ctx, release, err := sc.claimEngine()
	if err != nil {
		return nil, err
	}
	defer release()
	params, err := sc.solvePrepare(cmd)
	if err != nil {
		return nil, err
	}
	d := decide(ctx, sc.getSolver(), sc.game, params)
	g, err := sc.game.PlayTurn(d.Turn)
	if err != nil {
		return nil, err
	}
	sc.game = g
	sc.record.Add(d.Turn...)
	return msg("Played: " + d.String() + "\n" + g.ToDisplayText()), nil
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.busy.Load() {
		return nil, errOustBusy
	}
	if sc.game.Terminal() {
		return msg(fmt.Sprintf("game over, %v wins", sc.game.Winner())), nil
	}
	ev := negamax.NewGroupEvaluator(negamax.EvalWeightsFromConfig(sc.config))
	score := ev.Score(sc.game, sc.game.OnTurn())
	return msg(fmt.Sprintf("evaluation for %v: %d", sc.game.OnTurn(), score)), nil
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.busy.Load() {
		return nil, errOustBusy
	}
	ms := sc.game.LegalMoves()
	return msg(fmt.Sprintf("%d legal placements: %s", len(ms), move.TurnString(ms))), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		settings := sc.config.SanitizedSettings()
		keys := lo.Keys(settings)
		sort.Strings(keys)
		var sb strings.Builder
		for _, k := range keys {
			fmt.Fprintf(&sb, "%-24s %v\n", k, settings[k])
		}
		return msg(sb.String()), nil
	}
	opt := cmd.args[0]
	if !lo.Contains(sc.config.AllKeys(), opt) {
		return nil, fmt.Errorf("unknown setting %q", opt)
	}
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%v", sc.config.Get(opt))), nil
	}
	if sc.busy.Load() {
		return nil, errOustBusy
	}
	old := sc.config.Get(opt)
	sc.config.Set(opt, cmd.args[1])
	if err := sc.config.Validate(); err != nil {
		sc.config.Set(opt, old)
		return nil, err
	}
	// table size and evaluator weights are fixed at construction
	sc.solver = nil
	return msg("set " + opt + " to " + cmd.args[1]), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 && cmd.args[0] == "stop" {
		if !automatic.IsPlaying() || sc.autoplayCancel == nil {
			return nil, errors.New("automatic game runner is not running")
		}
		sc.autoplayCancel()
		return msg("stopping automatic games"), nil
	}
	numGames := 100
	if len(cmd.args) > 0 {
		var err error
		numGames, err = strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	threads, err := cmd.options.IntDefault("threads", 1)
	if err != nil {
		return nil, err
	}
	logfile := cmd.options.String("file")
	if logfile == "" {
		logfile = "/tmp/oust_autoplay.csv"
	}
	if automatic.IsPlaying() {
		return nil, automatic.ErrAlreadyPlaying
	}
	ctx, cancel := context.WithCancel(context.Background())
	sc.autoplayCancel = cancel
	go func() {
		defer cancel()
		err := automatic.StartCompVComp(ctx, sc.config, numGames, threads, logfile)
		if err != nil {
			sc.showError(err)
			return
		}
		sc.showMessage(fmt.Sprintf("automatic games done; %d games logged to %s",
			automatic.CVCCounter.Value(), logfile))
	}()
	return msg(fmt.Sprintf("playing %d games on %d threads, logging to %s", numGames, threads, logfile)), nil
}

func (sc *ShellController) analyze(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: analyze <logfile>")
	}
	stats, err := automatic.AnalyzeLogFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	return msg(stats), nil
}

func (sc *ShellController) save(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: save <file>")
	}
	if sc.game.Terminal() {
		sc.record.Winner = sc.game.Winner().String()
	}
	if err := game.SaveRecordFile(cmd.args[0], sc.record); err != nil {
		return nil, err
	}
	return msg("saved to " + cmd.args[0]), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: load <file>")
	}
	if sc.busy.Load() {
		return nil, errOustBusy
	}
	rec, err := game.LoadRecordFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	rules, err := game.NewGameRules(sc.config, rec.Size)
	if err != nil {
		return nil, err
	}
	g, err := rec.Replay(rules)
	if err != nil {
		return nil, err
	}
	sc.startGame(rules, g, rec)
	return msg(g.ToDisplayText()), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(usage("standard")), nil
	}
	return msg(usageTopic(cmd.args[0])), nil
}
