package alphabeta

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/othello/eval"
	"github.com/domino14/othello/move"
)

func placements(coords ...[2]int) []move.Move {
	moves := make([]move.Move, len(coords))
	for i, c := range coords {
		moves[i] = move.NewPlacement(c[0], c[1])
	}
	return moves
}

func TestOrderMovesStaticWeights(t *testing.T) {
	is := is.New(t)
	s := newSolver(t, &eval.Counting{}, nil)
	// weights: (2,2) -40, (3,3) 15, (1,1) 120, (4,4) 3, (3,4) 3
	moves := placements([2]int{2, 2}, [2]int{3, 4}, [2]int{3, 3}, [2]int{1, 1}, [2]int{4, 4})

	is.Equal(s.orderMoves(moves, true, nil),
		placements([2]int{1, 1}, [2]int{3, 3}, [2]int{3, 4}, [2]int{4, 4}, [2]int{2, 2}))
	// the minimizing side sorts ascending; (3,4) and (4,4) tie and keep
	// their order.
	is.Equal(s.orderMoves(moves, false, nil),
		placements([2]int{2, 2}, [2]int{3, 4}, [2]int{4, 4}, [2]int{3, 3}, [2]int{1, 1}))
	// input is not modified
	is.Equal(moves[0], move.NewPlacement(2, 2))
}

func TestOrderMovesHint(t *testing.T) {
	is := is.New(t)
	s := newSolver(t, &eval.Counting{}, nil)
	moves := placements([2]int{2, 2}, [2]int{3, 3}, [2]int{1, 1})
	hint := move.NewPlacement(2, 2)
	is.Equal(s.orderMoves(moves, true, &hint),
		placements([2]int{2, 2}, [2]int{1, 1}, [2]int{3, 3}))

	// a hint that is not among the moves changes nothing
	other := move.NewPlacement(8, 8)
	is.Equal(s.orderMoves(moves, true, &other),
		placements([2]int{1, 1}, [2]int{3, 3}, [2]int{2, 2}))
}

func TestOrderMovesHistory(t *testing.T) {
	is := is.New(t)
	s := newSolver(t, &eval.Counting{}, nil)
	moves := placements([2]int{3, 3}, [2]int{4, 4})
	// 3 + 7² beats 15 for the maximizing side
	s.History().Update(move.NewPlacement(4, 4), true, 7)
	is.Equal(s.orderMoves(moves, true, nil), placements([2]int{4, 4}, [2]int{3, 3}))
	// the bucket belongs to the maximizing side only
	is.Equal(s.orderMoves(moves, false, nil), placements([2]int{4, 4}, [2]int{3, 3}))
	s.History().Update(move.NewPlacement(3, 3), false, 5)
	// 15 - 25 now sorts first ascending
	is.Equal(s.orderMoves(moves, false, nil), placements([2]int{3, 3}, [2]int{4, 4}))

	s.SetHistoryOptim(false)
	is.Equal(s.orderMoves(moves, true, nil), placements([2]int{3, 3}, [2]int{4, 4}))
}

func TestHistoryHalving(t *testing.T) {
	is := is.New(t)
	h := NewHistoryTable(4)
	h.Update(move.NewPlacement(1, 1), true, 3)
	h.Update(move.NewPlacement(1, 2), true, 1)
	h.Update(move.NewPlacement(1, 3), true, 2)
	h.Update(move.NewPlacement(1, 4), true, 1)
	h.Update(move.Pass(), true, 9)
	is.Equal(h.Len(), 4)
	is.Equal(h.Score(move.NewPlacement(1, 1), true), 9.0)
	is.Equal(h.Score(move.NewPlacement(1, 1), false), 0.0)

	// a fifth bucket halves everything; the ones at 1 fall below 1 and go
	h.Update(move.NewPlacement(1, 5), true, 2)
	is.Equal(h.Len(), 3)
	is.Equal(h.Score(move.NewPlacement(1, 1), true), 4.5)
	is.Equal(h.Score(move.NewPlacement(1, 2), true), 0.0)
	is.Equal(h.Score(move.NewPlacement(1, 3), true), 2.0)
	is.Equal(h.Score(move.NewPlacement(1, 5), true), 2.0)
	is.Equal(h.halvings, 1)

	h.reset()
	is.Equal(h.Len(), 0)
}
