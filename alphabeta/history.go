package alphabeta

import (
	"math"

	"github.com/domino14/othello/move"
)

type historyKey struct {
	row, col   int
	maximizing bool
}

// HistoryTable accumulates a bonus for moves that caused cutoffs, per
// square and per side. Once it has more than maxBuckets buckets every
// value is halved and buckets that fall below 1 are dropped.
type HistoryTable struct {
	scores     map[historyKey]float64
	maxBuckets int
	halvings   int
}

func NewHistoryTable(maxBuckets int) *HistoryTable {
	return &HistoryTable{
		scores:     make(map[historyKey]float64),
		maxBuckets: maxBuckets,
	}
}

func (h *HistoryTable) reset() {
	clear(h.scores)
	h.halvings = 0
}

// Update adds depth² to the bucket of m. Passes never accrue.
func (h *HistoryTable) Update(m move.Move, maximizing bool, depth int) {
	if m.IsPass() {
		return
	}
	key := historyKey{m.Row(), m.Col(), maximizing}
	h.scores[key] += float64(depth * depth)
	if len(h.scores) > h.maxBuckets {
		h.halve()
	}
}

func (h *HistoryTable) halve() {
	for k, v := range h.scores {
		v *= 0.5
		if math.Abs(v) < 1.0 {
			delete(h.scores, k)
			continue
		}
		h.scores[k] = v
	}
	h.halvings++
}

// Score returns the accumulated bonus for m, or 0.
func (h *HistoryTable) Score(m move.Move, maximizing bool) float64 {
	if m.IsPass() {
		return 0
	}
	return h.scores[historyKey{m.Row(), m.Col(), maximizing}]
}

// Len returns the number of buckets.
func (h *HistoryTable) Len() int {
	return len(h.scores)
}
