package board

import (
	"fmt"
	"os"
)

var (
	ColorSupport = os.Getenv("OTHELLO_DISABLE_COLOR") != "on"
)

// A Cell is the content of one square of the board.
type Cell uint8

const (
	Empty Cell = iota
	White
	Black
)

// Opponent returns the other color. Empty stays Empty.
func (c Cell) Opponent() Cell {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return Empty
}

// Char returns the character used for the cell in the 65-char board string.
func (c Cell) Char() byte {
	switch c {
	case White:
		return 'O'
	case Black:
		return 'X'
	}
	return 'E'
}

func cellFromChar(ch byte) (Cell, bool) {
	switch ch {
	case 'E':
		return Empty, true
	case 'O':
		return White, true
	case 'X':
		return Black, true
	}
	return Empty, false
}

func (c Cell) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "empty"
}

// DisplayString returns the cell as shown in a board diagram.
func (c Cell) DisplayString() string {
	switch c {
	case White:
		if ColorSupport {
			return fmt.Sprintf("\x1b[1;37m%s\x1b[0m", "O")
		}
		return "O"
	case Black:
		if ColorSupport {
			return fmt.Sprintf("\x1b[1;31m%s\x1b[0m", "X")
		}
		return "X"
	}
	return "."
}
