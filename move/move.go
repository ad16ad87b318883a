package move

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Move is a single stone placement.
type Move struct {
	Row int
	Col int
}

// Outcome tells the caller whether a placement ended the turn.
type Outcome uint8

const (
	TurnEnded Outcome = iota
	SameMover
)

var ErrBadCoords = errors.New("cannot parse coordinates")

var reCoords *regexp.Regexp

func init() {
	reCoords = regexp.MustCompile(`^(?P<col>[a-zA-Z])(?P<row>[0-9]+)$`)
}

func (o Outcome) String() string {
	if o == SameMover {
		return "same-mover"
	}
	return "turn-ended"
}

// String gives the user-visible coordinates, e.g. c4.
func (m Move) String() string {
	return fmt.Sprintf("%c%d", rune('a'+m.Col), m.Row+1)
}

// FromString parses user-visible coordinates such as "c4".
func FromString(s string) (Move, error) {
	s = strings.TrimSpace(s)
	matches := reCoords.FindStringSubmatch(s)
	if matches == nil {
		return Move{}, fmt.Errorf("%w: %q", ErrBadCoords, s)
	}
	row, err := strconv.Atoi(matches[2])
	if err != nil || row < 1 {
		return Move{}, fmt.Errorf("%w: %q", ErrBadCoords, s)
	}
	col := int(strings.ToLower(matches[1])[0] - 'a')
	return Move{Row: row - 1, Col: col}, nil
}

// TurnString renders a sequence of placements separated by spaces.
func TurnString(t []Move) string {
	parts := make([]string, len(t))
	for i, m := range t {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// ParseTurn parses a list of coordinates.
func ParseTurn(coords []string) ([]Move, error) {
	t := make([]Move, 0, len(coords))
	for _, c := range coords {
		m, err := FromString(c)
		if err != nil {
			return nil, err
		}
		t = append(t, m)
	}
	return t, nil
}
