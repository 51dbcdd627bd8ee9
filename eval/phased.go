package eval

import (
	"github.com/domino14/othello/board"
)

type square struct{ row, col int }

var (
	corners  = []square{{1, 1}, {1, 8}, {8, 1}, {8, 8}}
	xSquares = []square{{2, 2}, {2, 7}, {7, 2}, {7, 7}}
	cSquares = []square{{1, 2}, {2, 1}, {1, 7}, {2, 8}, {7, 1}, {8, 2}, {7, 8}, {8, 7}}
	// every border square once, corners included.
	edges = borderSquares()
)

func borderSquares() []square {
	sq := []square{}
	for r := 1; r <= board.BoardDim; r++ {
		for c := 1; c <= board.BoardDim; c++ {
			if r == 1 || r == board.BoardDim || c == 1 || c == board.BoardDim {
				sq = append(sq, square{r, c})
			}
		}
	}
	return sq
}

// PhaseWeights are the multipliers for one game phase.
type PhaseWeights struct {
	Piece    float64
	Corner   float64
	Edge     float64
	Mobility float64
}

// Phased combines disc difference, corner and edge ownership, mobility,
// and X/C-square penalties with weights that depend on how many discs are
// on the board.
type Phased struct {
	Early, Mid, End PhaseWeights
	// MidStart and EndStart are disc counts at which each phase begins.
	MidStart, EndStart int
}

func NewPhased() *Phased {
	return &Phased{
		Early:    PhaseWeights{Piece: 0.5, Corner: 50, Edge: 3, Mobility: 10},
		Mid:      PhaseWeights{Piece: 1, Corner: 40, Edge: 5, Mobility: 5},
		End:      PhaseWeights{Piece: 10, Corner: 25, Edge: 3, Mobility: 2},
		MidStart: 20,
		EndStart: 50,
	}
}

func (p *Phased) Type() string {
	return PhasedName
}

func (p *Phased) weights(discs int) PhaseWeights {
	switch {
	case discs < p.MidStart:
		return p.Early
	case discs < p.EndStart:
		return p.Mid
	}
	return p.End
}

func ownership(pos board.Position, squares []square) int {
	score := 0
	for _, s := range squares {
		switch pos.At(s.row, s.col) {
		case board.White:
			score++
		case board.Black:
			score--
		}
	}
	return score
}

// Mobility returns the move-count difference, positive when White has
// more moves.
func Mobility(pos board.Position) int {
	current := len(pos.LegalMoves())
	opponent := len(pos.WithSideToMove(!pos.WhiteToMove()).LegalMoves())
	if pos.WhiteToMove() {
		return current - opponent
	}
	return opponent - current
}

// positional charges 2 per X-square disc and 1 per C-square disc to its
// owner.
func positional(pos board.Position) int {
	return -2*ownership(pos, xSquares) - ownership(pos, cSquares)
}

func (p *Phased) Evaluate(pos board.Position) float64 {
	w, b := pos.Count()
	wt := p.weights(w + b)
	return float64(w-b)*wt.Piece +
		float64(ownership(pos, corners))*wt.Corner +
		float64(ownership(pos, edges))*wt.Edge +
		float64(Mobility(pos))*wt.Mobility +
		float64(positional(pos))
}
