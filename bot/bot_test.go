package bot

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/oust/config"
	"github.com/domino14/oust/game"
	"github.com/domino14/oust/move"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	os.Exit(m.Run())
}

func testBot() *Bot {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigZobristSeed, "bot")
	cfg.Set(config.ConfigTTSizePower, 12)
	cfg.Set(config.ConfigSearchMode, "fixed")
	cfg.Set(config.ConfigSearchDepth, 1)
	return NewBot(cfg)
}

func TestHandleReturnsLegalTurn(t *testing.T) {
	is := is.New(t)
	b := testBot()
	resp := b.Handle(context.Background(), []byte(`{"size": 3, "moves": ["c1"], "depth": 2}`))
	is.Equal(resp.Error, "")
	is.True(len(resp.Moves) > 0)
	is.Equal(resp.Depth, 2)

	// the reply must replay as white's complete turn
	rules, err := game.NewGameRules(b.config, 3)
	is.NoErr(err)
	rec := &game.Record{Size: 3, Moves: append([]string{"c1"}, resp.Moves...)}
	g, err := rec.Replay(rules)
	is.NoErr(err)
	is.True(g.Terminal() || g.OnTurn().String() == "black")

	// the solver for this size is kept
	is.Equal(len(b.solvers), 1)
	b.Handle(context.Background(), []byte(`{"size": 3, "moves": []}`))
	is.Equal(len(b.solvers), 1)
}

func TestHandleDefaultsSize(t *testing.T) {
	is := is.New(t)
	b := testBot()
	resp := b.Handle(context.Background(), []byte(`{"moves": []}`))
	is.Equal(resp.Error, "")
	_, ok := b.solvers[5]
	is.True(ok)
}

func TestHandleErrors(t *testing.T) {
	is := is.New(t)
	b := testBot()
	cases := []struct {
		req  string
		want string
	}{
		{`{"size": 3`, "Could not parse request"},
		{`{"size": 1, "moves": []}`, "board side out of range"},
		{`{"size": 3, "moves": ["zz"]}`, "cannot parse coordinates"},
		{`{"size": 3, "moves": ["c1", "c1"]}`, "occupied"},
		{`{"size": 3, "moves": [], "mode": "sideways"}`, config.ErrBadSearchMode.Error()},
		// black wipes out white's only stone
		{`{"size": 2, "moves": ["b1", "c1", "b2"]}`, errGameOver.Error()},
	}
	for _, c := range cases {
		resp := b.Handle(context.Background(), []byte(c.req))
		is.True(strings.Contains(resp.Error, c.want)) // error mentions the cause
		is.Equal(len(resp.Moves), 0)
	}
}

func TestParseResponse(t *testing.T) {
	is := is.New(t)
	turn, resp, err := parseResponse([]byte(`{"moves": ["c1", "d2"], "score": 12, "depth": 3, "nodes": 100}`))
	is.NoErr(err)
	is.Equal(turn, []move.Move{{Row: 0, Col: 2}, {Row: 1, Col: 3}})
	is.Equal(resp.Score, 12)
	is.Equal(resp.Nodes, uint64(100))

	_, resp, err = parseResponse([]byte(`{"error": "Could not parse request"}`))
	is.True(err != nil)
	is.Equal(resp.Error, "Could not parse request")
}
