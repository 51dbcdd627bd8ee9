package alphabeta

import (
	"sort"

	"github.com/domino14/othello/move"
)

// Static square values: corners best, the squares next to them worst.
var positionWeights = [move.BoardDim][move.BoardDim]float64{
	{120, -20, 20, 5, 5, 20, -20, 120},
	{-20, -40, -5, -5, -5, -5, -40, -20},
	{20, -5, 15, 3, 3, 15, -5, 20},
	{5, -5, 3, 3, 3, 3, -5, 5},
	{5, -5, 3, 3, 3, 3, -5, 5},
	{20, -5, 15, 3, 3, 15, -5, 20},
	{-20, -40, -5, -5, -5, -5, -40, -20},
	{120, -20, 20, 5, 5, 20, -20, 120},
}

type orderedMove struct {
	m        move.Move
	estimate float64
}

// orderMoves sorts moves best-first for the side to move: by static weight
// plus history, descending, for the maximizing side, and by static weight
// minus history, ascending, for the minimizing side. The sort is stable,
// so equal estimates keep generation order. A hint found among the moves
// is moved to the front.
func (s *Solver) orderMoves(moves []move.Move, maximizing bool, hint *move.Move) []move.Move {
	om := make([]orderedMove, len(moves))
	for i, m := range moves {
		base := positionWeights[m.Row()-1][m.Col()-1]
		hist := 0.0
		if s.historyOptim {
			hist = s.history.Score(m, maximizing)
		}
		if maximizing {
			om[i] = orderedMove{m, base + hist}
		} else {
			om[i] = orderedMove{m, base - hist}
		}
	}
	if maximizing {
		sort.SliceStable(om, func(i, j int) bool {
			return om[i].estimate > om[j].estimate
		})
	} else {
		sort.SliceStable(om, func(i, j int) bool {
			return om[i].estimate < om[j].estimate
		})
	}
	ordered := make([]move.Move, 0, len(om))
	if hint != nil {
		for _, o := range om {
			if o.m == *hint {
				ordered = append(ordered, o.m)
				break
			}
		}
	}
	for _, o := range om {
		if hint != nil && o.m == *hint {
			continue
		}
		ordered = append(ordered, o.m)
	}
	return ordered
}
