// Package eval contains static evaluators for Othello positions.
// Every evaluator scores from White's point of view: positive favors
// White, negative favors Black.
package eval

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/domino14/othello/board"
)

var ErrUnknownEvaluator = errors.New("unknown evaluator")

// Evaluator is a static evaluation function. Implementations must be
// deterministic and must not modify the position.
type Evaluator interface {
	Evaluate(pos board.Position) float64
}

// Named is implemented by evaluators that can be selected with ByName.
type Named interface {
	Type() string
}

const (
	CountingName = "counting"
	PhasedName   = "phased"
)

// Name returns the name ByName knows e by, or its Go type for an
// evaluator without one.
func Name(e Evaluator) string {
	if n, ok := e.(Named); ok {
		return n.Type()
	}
	return fmt.Sprintf("%T", e)
}

// ByName maps a configured evaluator name to an Evaluator. Besides the
// plain names it accepts weighted sums such as "counting*2+phased".
func ByName(name string) (Evaluator, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !strings.ContainsAny(name, "+*") {
		return simpleByName(name)
	}
	terms := strings.Split(name, "+")
	parts := make([]Weighted, 0, len(terms))
	for _, term := range terms {
		base, weight, weighted := strings.Cut(term, "*")
		e, err := simpleByName(strings.TrimSpace(base))
		if err != nil {
			return nil, err
		}
		w := 1.0
		if weighted {
			w, err = strconv.ParseFloat(strings.TrimSpace(weight), 64)
			if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
				return nil, fmt.Errorf("%w: bad weight in %q", ErrUnknownEvaluator, term)
			}
		}
		parts = append(parts, Weighted{Evaluator: e, Weight: w})
	}
	return NewCombined(parts...), nil
}

func simpleByName(name string) (Evaluator, error) {
	switch name {
	case CountingName:
		return &Counting{}, nil
	case PhasedName:
		return NewPhased(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvaluator, name)
}
