package move

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MoveType is a type of move; a disc placement or a pass.
type MoveType uint8

const (
	MoveTypePlay MoveType = iota
	MoveTypePass
)

// BoardDim is the number of rows (and columns) of an Othello board.
const BoardDim = 8

var ErrBadMoveString = errors.New("badly formatted move")

// Move is a request to place a disc at (row, col), or to pass. Rows and
// columns are 1-based. Moves are plain values and compare equal with ==
// when their row, column and pass-ness agree. Whether a move is legal
// depends only on the position it is applied to.
type Move struct {
	action MoveType
	row    int8
	col    int8
}

var reCoords = regexp.MustCompile(`^\(?\s*([1-8])\s*,\s*([1-8])\s*\)?$`)

// NewPlacement creates a disc placement move. It does not check bounds;
// use Valid for that.
func NewPlacement(row, col int) Move {
	return Move{action: MoveTypePlay, row: int8(row), col: int8(col)}
}

// Pass returns the pass move. It carries no coordinates.
func Pass() Move {
	return Move{action: MoveTypePass}
}

// FromString parses "(r,c)", "r,c" or "pass".
func FromString(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "pass") {
		return Pass(), nil
	}
	matches := reCoords.FindStringSubmatch(s)
	if matches == nil {
		return Move{}, fmt.Errorf("%w: %q", ErrBadMoveString, s)
	}
	row, _ := strconv.Atoi(matches[1])
	col, _ := strconv.Atoi(matches[2])
	return NewPlacement(row, col), nil
}

func (m Move) IsPass() bool {
	return m.action == MoveTypePass
}

func (m Move) Row() int {
	return int(m.row)
}

func (m Move) Col() int {
	return int(m.col)
}

// Valid returns true for a pass, or for a placement inside the board.
func (m Move) Valid() bool {
	if m.IsPass() {
		return true
	}
	return m.row >= 1 && m.row <= BoardDim && m.col >= 1 && m.col <= BoardDim
}

// Index returns the 0-based row-major square index of a placement.
func (m Move) Index() int {
	return (int(m.row)-1)*BoardDim + int(m.col) - 1
}

// String returns the move in the output format: (row,col) or pass.
func (m Move) String() string {
	if m.IsPass() {
		return "pass"
	}
	return fmt.Sprintf("(%d,%d)", m.row, m.col)
}

// ShortDescription returns the move in algebraic notation, e.g. d3.
func (m Move) ShortDescription() string {
	if m.IsPass() {
		return "pass"
	}
	return fmt.Sprintf("%c%d", 'a'+rune(m.col-1), m.row)
}
