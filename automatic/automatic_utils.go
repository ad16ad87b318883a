package automatic

// Data collection for automatic games.

import (
	"context"
	"encoding/csv"
	"errors"
	"expvar"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/oust/config"
)

var (
	CVCCounter *expvar.Int
	isPlaying  atomic.Bool
)

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

var (
	turnLogHeader    = []string{"gameID", "turn", "player", "turn_moves", "score", "depth", "nodes"}
	summaryLogHeader = []string{"gameID", "winner", "turns", "placements", "nodes"}
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
}

func IsPlaying() bool {
	return isPlaying.Load()
}

// SummaryFilename is where the per-game summary for a turn log goes.
func SummaryFilename(outputFilename string) string {
	return strings.TrimSuffix(outputFilename, ".csv") + "_games.csv"
}

func writeCSV(filename string, header []string, rows <-chan []string) error {
	f, err := os.Create(filename)
	if err != nil {
		// keep draining so producers never block
		for range rows {
		}
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	w.Write(header)
	for row := range rows {
		w.Write(row)
	}
	w.Flush()
	return w.Error()
}

// StartCompVComp plays numGames engine-vs-engine games on threads workers
// and blocks until they are done or ctx is cancelled. Every turn is written
// to outputFilename, and a line per game to SummaryFilename(outputFilename).
func StartCompVComp(ctx context.Context, cfg *config.Config, numGames, threads int,
	outputFilename string) error {

	if !isPlaying.CompareAndSwap(false, true) {
		return ErrAlreadyPlaying
	}
	defer isPlaying.Store(false)
	threads = max(1, threads)

	log.Info().Int("games", numGames).Int("threads", threads).Msg("starting-comp-v-comp")
	CVCCounter.Set(0)
	jobs := make(chan int, 100)
	logChan := make(chan []string, 100)
	sumChan := make(chan []string, 100)

	g := &errgroup.Group{}
	workers, wctx := errgroup.WithContext(ctx)

	for i := 1; i <= threads; i++ {
		workers.Go(func() error {
			r, err := NewGameRunner(logChan, cfg)
			if err != nil {
				return err
			}
			for range jobs {
				sum, err := r.PlayGame(wctx)
				if err != nil {
					if wctx.Err() != nil {
						// stopping early
						return nil
					}
					return err
				}
				sumChan <- sum.csvRow()
				CVCCounter.Add(1)
			}
			return nil
		})
	}

	g.Go(func() error {
	gameLoop:
		for i := 1; i <= numGames; i++ {
			select {
			case jobs <- i:
			case <-wctx.Done():
				log.Info().Msg("got stop signal, exiting soon...")
				break gameLoop
			}
			if i%1000 == 0 {
				log.Info().Int("queued", i).Msg("queued-jobs")
			}
		}
		close(jobs)
		err := workers.Wait()
		close(logChan)
		close(sumChan)
		log.Info().Int64("games-played", CVCCounter.Value()).Msg("all-games-finished")
		return err
	})

	g.Go(func() error {
		return writeCSV(outputFilename, turnLogHeader, logChan)
	})
	g.Go(func() error {
		return writeCSV(SummaryFilename(outputFilename), summaryLogHeader, sumChan)
	})

	return g.Wait()
}
