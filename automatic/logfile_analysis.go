package automatic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/domino14/oust/stats"
)

var ErrNoGames = errors.New("log file has no games")

type gameTally struct {
	turns      int
	placements int
	nodes      float64
	lastPlayer string
}

// AnalyzeLogFile reads a turn log written by StartCompVComp and summarizes
// it. The player of a game's last turn is its winner: a game ends either by
// wiping out the opponent or by leaving them without a legal placement.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	r := csv.NewReader(file)

	// Record looks like:
	// gameID,turn,player,turn_moves,score,depth,nodes
	tallies := map[string]*gameTally{}
	var order []string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == "gameID" {
			continue
		}
		if len(record) != len(turnLogHeader) {
			return "", fmt.Errorf("bad record %v", record)
		}
		t, ok := tallies[record[0]]
		if !ok {
			t = &gameTally{}
			tallies[record[0]] = t
			order = append(order, record[0])
		}
		nodes, err := strconv.ParseUint(record[6], 10, 64)
		if err != nil {
			return "", err
		}
		t.turns++
		t.placements += len(strings.Fields(record[3]))
		t.nodes += float64(nodes)
		t.lastPlayer = record[2]
	}
	if len(order) == 0 {
		return "", ErrNoGames
	}
	games := lo.Map(order, func(id string, _ int) *gameTally { return tallies[id] })
	wins := lo.CountBy(games, func(t *gameTally) bool { return t.lastPlayer == "black" })
	lengths := lo.Map(games, func(t *gameTally, _ int) float64 { return float64(t.turns) })
	placements := lo.Map(games, func(t *gameTally, _ int) float64 { return float64(t.placements) })
	nodes := lo.Map(games, func(t *gameTally, _ int) float64 { return t.nodes })

	n := float64(len(games))
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", len(games))
	fmt.Fprintf(&sb, "black (went first) wins: %d (%.3f%%)\n", wins, 100.0*float64(wins)/n)
	fmt.Fprintf(&sb, "black win rate: %v\n", stats.Proportion{Successes: wins, Trials: len(games)})
	fmt.Fprintf(&sb, "white wins: %d (%.3f%%)\n", len(games)-wins, 100.0*float64(len(games)-wins)/n)
	for _, s := range []struct {
		name string
		xs   []float64
	}{{"Turns", lengths}, {"Placements", placements}, {"Nodes", nodes}} {
		mean, stdev := stat.MeanStdDev(s.xs, nil)
		fmt.Fprintf(&sb, "%s per game: mean %.3f  stdev %.3f\n", s.name, mean, stdev)
	}
	if slices.Min(lengths) < slices.Max(lengths) {
		sb.WriteString("Game length histogram (turns):\n")
		hist := histogram.Hist(min(10, len(lengths)), lengths)
		if err := histogram.Fprint(&sb, hist, histogram.Linear(40)); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}
