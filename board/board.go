// Package board holds the hexagonal Oust board: its geometry, its cells, and
// the group flood fill the rules are built on.
package board

import (
	"errors"
	"fmt"
	"strings"
)

// Color is the occupant of a cell, and also identifies a player.
type Color uint8

const (
	NoColor Color = iota
	Black
	White
)

const (
	MinSide = 2
	MaxSide = 12
)

var ErrBadSide = errors.New("board side out of range")

// Directions are the six axial neighbour offsets (row, col).
var Directions = [6][2]int{{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1}}

func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "none"
}

// Rune is the character used for this color in board diagrams.
func (c Color) Rune() rune {
	switch c {
	case Black:
		return 'X'
	case White:
		return 'O'
	}
	return '.'
}

// ColorFromRune is the inverse of Rune. Any unknown rune is an empty cell.
func ColorFromRune(r rune) Color {
	switch r {
	case 'X', 'x', 'B', 'b':
		return Black
	case 'O', 'o', 'W', 'w':
		return White
	}
	return NoColor
}

// Board is a hexagon of the given side, laid out on a dim x dim axial grid
// with dim = 2*side - 1. Cell (r, c) is on the board iff
// side-1 <= r+c <= 3*(side-1).
type Board struct {
	side  int
	dim   int
	cells []Color
	count [3]int
}

func MakeBoard(side int) (*Board, error) {
	if side < MinSide || side > MaxSide {
		return nil, fmt.Errorf("%w: %d", ErrBadSide, side)
	}
	dim := 2*side - 1
	return &Board{
		side:  side,
		dim:   dim,
		cells: make([]Color, dim*dim),
	}, nil
}

func (b *Board) Side() int {
	return b.side
}

// Dim is the extent of the square grid the hexagon is stored in.
func (b *Board) Dim() int {
	return b.dim
}

func (b *Board) OnBoard(row, col int) bool {
	if row < 0 || col < 0 || row >= b.dim || col >= b.dim {
		return false
	}
	s := row + col
	return s >= b.side-1 && s <= 3*(b.side-1)
}

func (b *Board) Index(row, col int) int {
	return row*b.dim + col
}

func (b *Board) Coords(idx int) (int, int) {
	return idx / b.dim, idx % b.dim
}

// Get returns NoColor for empty and off-board cells alike.
func (b *Board) Get(row, col int) Color {
	if !b.OnBoard(row, col) {
		return NoColor
	}
	return b.cells[b.Index(row, col)]
}

func (b *Board) GetIdx(idx int) Color {
	return b.cells[idx]
}

// Set places (or with NoColor, removes) a stone. The caller is responsible
// for only setting on-board cells.
func (b *Board) Set(row, col int, c Color) {
	b.SetIdx(b.Index(row, col), c)
}

func (b *Board) SetIdx(idx int, c Color) {
	b.count[b.cells[idx]]--
	b.cells[idx] = c
	b.count[c]++
}

// Count is the number of stones of the given color on the board.
func (b *Board) Count(c Color) int {
	if c == NoColor {
		return 0
	}
	return b.count[c]
}

// NumCells is the number of on-board cells.
func (b *Board) NumCells() int {
	n := b.side
	return 3*n*(n-1) + 1
}

func (b *Board) IsEmpty() bool {
	return b.count[Black] == 0 && b.count[White] == 0
}

func (b *Board) Copy() *Board {
	nb := &Board{side: b.side, dim: b.dim, count: b.count}
	nb.cells = make([]Color, len(b.cells))
	copy(nb.cells, b.cells)
	return nb
}

// Clear empties the board.
func (b *Board) Clear() {
	clear(b.cells)
	b.count = [3]int{}
}

// Neighbors appends the on-board neighbour indices of idx to buf.
func (b *Board) Neighbors(idx int, buf []int) []int {
	row, col := b.Coords(idx)
	for _, d := range Directions {
		nr, nc := row+d[0], col+d[1]
		if b.OnBoard(nr, nc) {
			buf = append(buf, b.Index(nr, nc))
		}
	}
	return buf
}

// Group appends to members every cell of the same-colored group containing
// idx. visited must have one slot per grid cell; cells already marked visited
// are skipped, and every member is marked. stack is scratch space and is
// returned so callers can keep reusing it.
func (b *Board) Group(idx int, visited []bool, members, stack []int) ([]int, []int) {
	c := b.cells[idx]
	if c == NoColor || visited[idx] {
		return members, stack
	}
	visited[idx] = true
	stack = append(stack[:0], idx)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		members = append(members, cur)
		row, col := b.Coords(cur)
		for _, d := range Directions {
			nr, nc := row+d[0], col+d[1]
			if !b.OnBoard(nr, nc) {
				continue
			}
			n := b.Index(nr, nc)
			if !visited[n] && b.cells[n] == c {
				visited[n] = true
				stack = append(stack, n)
			}
		}
	}
	return members, stack
}

// ColName is the letter naming a column.
func ColName(col int) string {
	return string(rune('a' + col))
}

// ToDisplayText draws the hexagon with each row shifted so that neighbours
// touch on screen.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	for row := 0; row < b.dim; row++ {
		fmt.Fprintf(&sb, "%2d ", row+1)
		indent := row - (b.side - 1)
		if indent < 0 {
			indent = -indent
		}
		sb.WriteString(strings.Repeat(" ", indent))
		first := true
		for col := 0; col < b.dim; col++ {
			if !b.OnBoard(row, col) {
				continue
			}
			if !first {
				sb.WriteByte(' ')
			}
			first = false
			sb.WriteRune(b.cells[b.Index(row, col)].Rune())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   cells are <column><row>; the first cell of row 1 is " +
		ColName(b.side-1) + "1\n")
	return sb.String()
}
