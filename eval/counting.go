package eval

import "github.com/domino14/othello/board"

// Counting scores a position as white discs minus black discs.
type Counting struct{}

func (c *Counting) Evaluate(pos board.Position) float64 {
	w, b := pos.Count()
	return float64(w - b)
}

func (c *Counting) Type() string {
	return CountingName
}
