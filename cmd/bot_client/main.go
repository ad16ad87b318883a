// Command bot_client asks a running bot for a turn. The positional
// arguments are the placements played so far, e.g.
//
//	bot_client --board-size 3 c1 a3
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/oust/bot"
	"github.com/domino14/oust/config"
	"github.com/domino14/oust/game"
	"github.com/domino14/oust/move"
)

func main() {
	cfg := config.DefaultConfig()
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	size := cfg.GetInt(config.ConfigBoardSize)
	rules, err := game.NewGameRules(cfg, size)
	if err != nil {
		log.Fatal().Err(err).Msg("bad-board-size")
	}
	rec := &game.Record{Size: size, Moves: cfg.Args()}
	g, err := rec.Replay(rules)
	if err != nil {
		log.Fatal().Err(err).Msg("bad-moves")
	}
	fmt.Println(g.ToDisplayText())

	ctx := context.Background()
	nc, err := bot.Connect(ctx, cfg.GetString(config.ConfigNatsURL))
	if err != nil {
		log.Fatal().Err(err).Msg("nats-connect")
	}
	defer nc.Close()

	client := bot.NewClient(nc, cfg.GetString(config.ConfigBotSubject))
	turn, resp, err := client.RequestTurn(ctx, bot.Request{Size: size, Moves: cfg.Args()})
	if err != nil {
		log.Fatal().Err(err).Msg("request-turn")
	}
	fmt.Printf("bot plays %s (score %d, depth %d, nodes %d)\n",
		move.TurnString(turn), resp.Score, resp.Depth, resp.Nodes)
	if g, err = g.PlayTurn(turn); err != nil {
		log.Fatal().Err(err).Msg("bot-turn-illegal")
	}
	fmt.Println(g.ToDisplayText())
}
