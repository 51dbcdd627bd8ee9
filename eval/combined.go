package eval

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/othello/board"
)

// Weighted is an evaluator with a multiplier.
type Weighted struct {
	Evaluator Evaluator
	Weight    float64
}

// Combined sums several weighted evaluators.
type Combined struct {
	parts []Weighted
}

func NewCombined(parts ...Weighted) *Combined {
	return &Combined{parts: parts}
}

func (c *Combined) Evaluate(pos board.Position) float64 {
	return lo.SumBy(c.parts, func(w Weighted) float64 {
		return w.Weight * w.Evaluator.Evaluate(pos)
	})
}

// Type spells the sum out the way ByName reads it.
func (c *Combined) Type() string {
	terms := lo.Map(c.parts, func(w Weighted, _ int) string {
		if w.Weight == 1 {
			return Name(w.Evaluator)
		}
		return Name(w.Evaluator) + "*" + strconv.FormatFloat(w.Weight, 'g', -1, 64)
	})
	return strings.Join(terms, "+")
}
