package testhelpers

import (
	"fmt"
	"strings"

	"github.com/domino14/oust/board"
	"github.com/domino14/oust/config"
	"github.com/domino14/oust/game"
)

var DefaultConfig = config.DefaultConfig()

func init() {
	DefaultConfig.Set(config.ConfigZobristSeed, "testhelpers")
}

// BoardFromDiagram builds a board from the rows of a hexagon as printed by
// ToDisplayText, without the row labels. Whitespace is ignored; each row
// must list exactly its on-board cells, left to right.
func BoardFromDiagram(side int, diagram string) (*board.Board, error) {
	b, err := board.MakeBoard(side)
	if err != nil {
		return nil, err
	}
	var rows []string
	for _, line := range strings.Split(diagram, "\n") {
		line = strings.Join(strings.Fields(line), "")
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) != b.Dim() {
		return nil, fmt.Errorf("diagram has %d rows, want %d", len(rows), b.Dim())
	}
	for row, line := range rows {
		cells := []rune(line)
		i := 0
		for col := 0; col < b.Dim(); col++ {
			if !b.OnBoard(row, col) {
				continue
			}
			if i >= len(cells) {
				return nil, fmt.Errorf("row %d is too short", row+1)
			}
			if c := board.ColorFromRune(cells[i]); c != board.NoColor {
				b.Set(row, col, c)
			}
			i++
		}
		if i != len(cells) {
			return nil, fmt.Errorf("row %d is too long", row+1)
		}
	}
	return b, nil
}

// GameFromDiagram is BoardFromDiagram wrapped into a game with the given side
// to move. It panics on a malformed diagram.
func GameFromDiagram(side int, diagram string, onTurn board.Color) *game.Game {
	b, err := BoardFromDiagram(side, diagram)
	if err != nil {
		panic(err)
	}
	rules, err := game.NewGameRules(DefaultConfig, side)
	if err != nil {
		panic(err)
	}
	g, err := game.NewGameFromBoard(rules, b, onTurn)
	if err != nil {
		panic(err)
	}
	return g
}
