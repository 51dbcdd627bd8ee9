package board

import (
	"errors"
	"fmt"
	"strings"
)

// PositionStringLength is the length of an encoded position: one
// side-to-move character followed by 64 row-major cells.
const PositionStringLength = NumSquares + 1

var (
	ErrWrongLength   = errors.New("position string has the wrong length")
	ErrBadSideToMove = errors.New("bad side-to-move character")
	ErrBadSquare     = errors.New("bad square character")
)

// FromString decodes a 65-character position string. Character 0 is W or
// B (side to move); characters 1..64 are E (empty), O (white) or X (black),
// row-major from (1,1).
func FromString(s string) (Position, error) {
	var p Position
	if len(s) != PositionStringLength {
		return p, fmt.Errorf("%w: must be exactly %d characters long (got %d)",
			ErrWrongLength, PositionStringLength, len(s))
	}
	switch s[0] {
	case 'W':
		p.whiteToMove = true
	case 'B':
		p.whiteToMove = false
	default:
		return p, fmt.Errorf("%w: first character must be 'W' or 'B' (got '%c')",
			ErrBadSideToMove, s[0])
	}
	for i := 1; i < PositionStringLength; i++ {
		c, ok := cellFromChar(s[i])
		if !ok {
			return p, fmt.Errorf("%w: character at position %d must be 'E', 'O', or 'X' (got '%c')",
				ErrBadSquare, i, s[i])
		}
		p.squares[i-1] = c
	}
	return p, nil
}

// String encodes the position in the 65-character format read by FromString.
func (p Position) String() string {
	var sb strings.Builder
	sb.Grow(PositionStringLength)
	if p.whiteToMove {
		sb.WriteByte('W')
	} else {
		sb.WriteByte('B')
	}
	for _, c := range p.squares {
		sb.WriteByte(c.Char())
	}
	return sb.String()
}

// ToDisplayText returns a diagram of the board with 1-based row and
// column labels, the disc count and the side to move.
func (p Position) ToDisplayText() string {
	var str string
	row := "   "
	for i := 0; i < BoardDim; i++ {
		row = row + fmt.Sprintf("%d", i+1) + " "
	}
	str = str + row + "\n"
	str = str + "   " + strings.Repeat("-", BoardDim*2) + "\n"
	for i := 1; i <= BoardDim; i++ {
		row := fmt.Sprintf("%2d|", i)
		for j := 1; j <= BoardDim; j++ {
			row = row + p.At(i, j).DisplayString() + " "
		}
		row = row + "|"
		str = str + row + "\n"
	}
	str = str + "   " + strings.Repeat("-", BoardDim*2) + "\n"
	w, b := p.Count()
	str = str + fmt.Sprintf("White (O): %d  Black (X): %d  To move: %v\n", w, b, p.SideToMove())
	return "\n" + str
}
