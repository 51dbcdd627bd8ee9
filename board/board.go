// Package board contains the Othello position model: an 8x8 grid of
// cells plus the side to move. Positions are values; applying a move
// returns a new Position and never modifies the receiver.
package board

import (
	"errors"
	"fmt"

	"github.com/domino14/othello/move"
)

const (
	// BoardDim is the side length of the board.
	BoardDim = move.BoardDim
	// NumSquares is the number of squares on the board.
	NumSquares = BoardDim * BoardDim
)

var ErrIllegalMove = errors.New("illegal move")

// The 8 compass directions as (row delta, col delta): N, NE, E, SE, S, SW, W, NW.
var directions = [8][2]int{
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1},
	{1, 0}, {1, -1}, {0, -1}, {-1, -1},
}

// Position is an Othello position. The zero value is an empty board with
// Black to move. Two positions are == iff every cell and the side to move
// agree.
type Position struct {
	squares     [NumSquares]Cell
	whiteToMove bool
}

// Initial returns the canonical starting position: White on (4,4) and
// (5,5), Black on (4,5) and (5,4), White to move.
func Initial() Position {
	var p Position
	p.set(4, 4, White)
	p.set(5, 5, White)
	p.set(4, 5, Black)
	p.set(5, 4, Black)
	p.whiteToMove = true
	return p
}

func onBoard(row, col int) bool {
	return row >= 1 && row <= BoardDim && col >= 1 && col <= BoardDim
}

func idx(row, col int) int {
	return (row-1)*BoardDim + col - 1
}

func (p *Position) set(row, col int, c Cell) {
	p.squares[idx(row, col)] = c
}

// At returns the cell at the 1-based (row, col). Off-board coordinates
// read as Empty.
func (p Position) At(row, col int) Cell {
	if !onBoard(row, col) {
		return Empty
	}
	return p.squares[idx(row, col)]
}

// WhiteToMove returns true if White has the move.
func (p Position) WhiteToMove() bool {
	return p.whiteToMove
}

// SideToMove returns the color of the side to move.
func (p Position) SideToMove() Cell {
	if p.whiteToMove {
		return White
	}
	return Black
}

// WithSideToMove returns a copy of the position with the given side to move.
func (p Position) WithSideToMove(white bool) Position {
	p.whiteToMove = white
	return p
}

// Count returns the number of white and black discs.
func (p Position) Count() (white, black int) {
	for _, c := range p.squares {
		switch c {
		case White:
			white++
		case Black:
			black++
		}
	}
	return white, black
}

// Empties returns the number of empty squares.
func (p Position) Empties() int {
	w, b := p.Count()
	return NumSquares - w - b
}

func (p Position) hasNeighbour(row, col int) bool {
	for _, d := range directions {
		if p.At(row+d[0], col+d[1]) != Empty {
			return true
		}
	}
	return false
}

// capturesInDirection reports whether placing a disc of color own at
// (row, col) brackets at least one opponent disc in direction d.
func (p Position) capturesInDirection(row, col int, d [2]int, own Cell) bool {
	opp := own.Opponent()
	r, c := row+d[0], col+d[1]
	if p.At(r, c) != opp {
		return false
	}
	r, c = r+d[0], c+d[1]
	for onBoard(r, c) {
		switch p.squares[idx(r, c)] {
		case Empty:
			return false
		case own:
			return true
		}
		r, c = r+d[0], c+d[1]
	}
	return false
}

func (p Position) isMove(row, col int, own Cell) bool {
	if !onBoard(row, col) || p.At(row, col) != Empty || !p.hasNeighbour(row, col) {
		return false
	}
	for _, d := range directions {
		if p.capturesInDirection(row, col, d, own) {
			return true
		}
	}
	return false
}

// LegalMoves returns every legal placement for the side to move, in
// row-major order. An empty result means the side to move must pass.
func (p Position) LegalMoves() []move.Move {
	own := p.SideToMove()
	moves := []move.Move{}
	for r := 1; r <= BoardDim; r++ {
		for c := 1; c <= BoardDim; c++ {
			if p.isMove(r, c, own) {
				moves = append(moves, move.NewPlacement(r, c))
			}
		}
	}
	return moves
}

// HasLegalMove is LegalMoves without the allocation.
func (p Position) HasLegalMove() bool {
	own := p.SideToMove()
	for r := 1; r <= BoardDim; r++ {
		for c := 1; c <= BoardDim; c++ {
			if p.isMove(r, c, own) {
				return true
			}
		}
	}
	return false
}

// IsTerminal returns true iff neither the side to move nor its opponent
// has a legal move.
func (p Position) IsTerminal() bool {
	if p.HasLegalMove() {
		return false
	}
	return !p.WithSideToMove(!p.whiteToMove).HasLegalMove()
}

// Apply returns the position after m. A pass only flips the side to move.
// A placement puts the mover's disc down, flips every bracketed run of
// opponent discs in the 8 directions, then flips the side to move.
// m must come from LegalMoves; see PlayMove for a checked version.
func (p Position) Apply(m move.Move) Position {
	next := p
	if m.IsPass() {
		next.whiteToMove = !p.whiteToMove
		return next
	}
	own := p.SideToMove()
	row, col := m.Row(), m.Col()
	next.set(row, col, own)
	for _, d := range directions {
		if !p.capturesInDirection(row, col, d, own) {
			continue
		}
		r, c := row+d[0], col+d[1]
		for next.At(r, c) == own.Opponent() {
			next.set(r, c, own)
			r, c = r+d[0], c+d[1]
		}
	}
	next.whiteToMove = !p.whiteToMove
	return next
}

// Flips returns how many opponent discs m would flip.
func (p Position) Flips(m move.Move) int {
	if m.IsPass() || !m.Valid() {
		return 0
	}
	own := p.SideToMove()
	n := 0
	for _, d := range directions {
		if !p.capturesInDirection(m.Row(), m.Col(), d, own) {
			continue
		}
		r, c := m.Row()+d[0], m.Col()+d[1]
		for p.At(r, c) == own.Opponent() {
			n++
			r, c = r+d[0], c+d[1]
		}
	}
	return n
}

// ValidateMove returns an error wrapping ErrIllegalMove if m cannot be
// played in p.
func (p Position) ValidateMove(m move.Move) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %v is off the board", ErrIllegalMove, m)
	}
	if m.IsPass() {
		if p.HasLegalMove() {
			return fmt.Errorf("%w: cannot pass with legal moves available", ErrIllegalMove)
		}
		return nil
	}
	if p.At(m.Row(), m.Col()) != Empty {
		return fmt.Errorf("%w: %v is occupied", ErrIllegalMove, m)
	}
	if !p.isMove(m.Row(), m.Col(), p.SideToMove()) {
		return fmt.Errorf("%w: %v captures nothing", ErrIllegalMove, m)
	}
	return nil
}

// PlayMove validates m and then applies it.
func (p Position) PlayMove(m move.Move) (Position, error) {
	if err := p.ValidateMove(m); err != nil {
		return p, err
	}
	return p.Apply(m), nil
}
