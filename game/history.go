package game

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/domino14/oust/move"
)

// Record is a game as a list of placements from the empty board, in the
// order they were made.
type Record struct {
	Size   int      `yaml:"size"`
	Moves  []string `yaml:"moves"`
	Winner string   `yaml:"winner,omitempty"`
}

func NewRecord(size int) *Record {
	return &Record{Size: size, Moves: []string{}}
}

func (r *Record) Add(moves ...move.Move) {
	for _, m := range moves {
		r.Moves = append(r.Moves, m.String())
	}
}

// Replay plays every recorded move on a fresh board.
func (r *Record) Replay(rules *GameRules) (*Game, error) {
	if rules.Side() != r.Size {
		return nil, fmt.Errorf("record is for size %d, rules are for size %d", r.Size, rules.Side())
	}
	g, err := NewGame(rules)
	if err != nil {
		return nil, err
	}
	moves, err := move.ParseTurn(r.Moves)
	if err != nil {
		return nil, err
	}
	for i, m := range moves {
		g, _, err = g.PlayMove(m)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	return g, nil
}

func (r *Record) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(r)
}

func ReadRecord(rd io.Reader) (*Record, error) {
	r := &Record{}
	if err := yaml.NewDecoder(rd).Decode(r); err != nil {
		return nil, fmt.Errorf("decoding game record: %w", err)
	}
	return r, nil
}

func SaveRecordFile(path string, r *Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.Write(f)
}

func LoadRecordFile(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRecord(f)
}
