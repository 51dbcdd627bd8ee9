// Package alphabeta implements a time-bounded Othello search: alpha-beta
// minimax with a transposition table, a history heuristic and static move
// ordering, driven by iterative deepening.
//
// Scores are from White's point of view. White is the maximizing side.
package alphabeta

import (
	"context"
	"errors"
	"math"
	"sync/atomic"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/eval"
	"github.com/domino14/othello/move"
)

var (
	ErrInvalidDepth     = errors.New("search depth must be at least 1")
	ErrInvalidTimeLimit = errors.New("time limit must be positive")
	ErrSearchAborted    = errors.New("search aborted before completing")
	ErrSearchPanicked   = errors.New("search panicked")
	ErrNoEvaluator      = errors.New("no evaluator given")
)

var Infinity = math.Inf(1)

// Solver searches Othello positions. It owns a transposition table and a
// history table, both reset at the start of every Solve or SolveDepth
// call. A Solver is not safe for concurrent use; give each goroutine its
// own.
type Solver struct {
	evaluator eval.Evaluator
	ttable    *TranspositionTable
	history   *HistoryTable

	transpositionTableOptim bool
	historyOptim            bool

	ttMaxEntries int
	maxDepth     int
	budget       TimeBudget

	lastDepth int
	nodes     atomic.Uint64
}

// Init initializes the solver
func (s *Solver) Init(evaluator eval.Evaluator, cfg *config.Config) error {
	if evaluator == nil {
		return ErrNoEvaluator
	}
	s.evaluator = evaluator
	s.transpositionTableOptim = true
	s.historyOptim = true
	s.ttMaxEntries = cfg.GetInt(config.ConfigTTMaxEntries)
	s.maxDepth = cfg.GetInt(config.ConfigMaxDepth)
	s.budget = TimeBudgetFromConfig(cfg)
	s.ttable = &TranspositionTable{}
	s.ttable.Reset(s.ttMaxEntries)
	s.history = NewHistoryTable(cfg.GetInt(config.ConfigHistoryMaxBuckets))
	return nil
}

func (s *Solver) SetTranspositionTableOptim(tt bool) {
	s.transpositionTableOptim = tt
}

func (s *Solver) SetHistoryOptim(h bool) {
	s.historyOptim = h
}

func (s *Solver) SetMaxDepth(d int) {
	s.maxDepth = d
}

func (s *Solver) SetTimeBudget(b TimeBudget) {
	s.budget = b
}

func (s *Solver) TimeBudget() TimeBudget {
	return s.budget
}

func (s *Solver) Evaluator() eval.Evaluator {
	return s.evaluator
}

// LastCompletedDepth returns the deepest iteration completed by the last
// Solve call, or the depth of the last successful SolveDepth call.
func (s *Solver) LastCompletedDepth() int {
	return s.lastDepth
}

// Nodes returns the number of nodes visited by the last search.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

func (s *Solver) TranspositionTable() *TranspositionTable {
	return s.ttable
}

func (s *Solver) History() *HistoryTable {
	return s.history
}

func (s *Solver) prepare() {
	s.ttable.Reset(s.ttMaxEntries)
	s.history.reset()
	s.nodes.Store(0)
	s.lastDepth = 0
}

func (s *Solver) store(ctx context.Context, key uint64, pos board.Position, maximizing bool,
	depth int, score float64, flag uint8) {
	// Anything computed after the deadline may rest on cut-short subtrees.
	if !s.transpositionTableOptim || ctx.Err() != nil {
		return
	}
	s.ttable.store(key, pos, maximizing, depth, score, flag)
}

// rootKey and childKey give the position keys the table is indexed by.
// Without the table there is nothing to hash.
func (s *Solver) rootKey(pos board.Position) uint64 {
	if !s.transpositionTableOptim {
		return 0
	}
	return s.ttable.positionKey(pos)
}

func (s *Solver) childKey(key uint64, pos, next board.Position) uint64 {
	if !s.transpositionTableOptim {
		return 0
	}
	return s.ttable.childKey(key, pos, next)
}

// alphabeta returns the minimax value of pos searched depth plies deep.
// A side with no legal move passes, which uses up one ply. key is the
// position key of pos.
func (s *Solver) alphabeta(ctx context.Context, pos board.Position, key uint64, depth int,
	α, β float64, maximizing bool) float64 {

	if ctx.Err() != nil {
		return s.evaluator.Evaluate(pos)
	}
	s.nodes.Add(1)

	if s.transpositionTableOptim {
		if score, ok := s.ttable.lookup(key, pos, maximizing, depth, α, β); ok {
			return score
		}
	}

	if depth <= 0 {
		score := s.evaluator.Evaluate(pos)
		s.store(ctx, key, pos, maximizing, depth, score, TTExact)
		return score
	}

	children := pos.LegalMoves()
	if len(children) == 0 {
		passed := pos.Apply(move.Pass())
		if !passed.HasLegalMove() {
			// game over
			score := s.evaluator.Evaluate(pos)
			s.store(ctx, key, pos, maximizing, depth, score, TTExact)
			return score
		}
		return s.alphabeta(ctx, passed, s.childKey(key, pos, passed), depth-1, α, β, !maximizing)
	}
	children = s.orderMoves(children, maximizing, nil)

	αOrig, βOrig := α, β
	evaluatedAny := false
	var bestValue float64

	if maximizing {
		bestValue = -Infinity
		for _, child := range children {
			if ctx.Err() != nil {
				break
			}
			next := pos.Apply(child)
			value := s.alphabeta(ctx, next, s.childKey(key, pos, next), depth-1, α, β, false)
			evaluatedAny = true
			bestValue = math.Max(bestValue, value)
			α = math.Max(α, value)
			if β <= α {
				s.recordCutoff(child, maximizing, depth)
				break // beta cut-off
			}
		}
	} else {
		bestValue = Infinity
		for _, child := range children {
			if ctx.Err() != nil {
				break
			}
			next := pos.Apply(child)
			value := s.alphabeta(ctx, next, s.childKey(key, pos, next), depth-1, α, β, true)
			evaluatedAny = true
			bestValue = math.Min(bestValue, value)
			β = math.Min(β, value)
			if β <= α {
				s.recordCutoff(child, maximizing, depth)
				break // alpha cut-off
			}
		}
	}
	if evaluatedAny {
		s.store(ctx, key, pos, maximizing, depth, bestValue, boundFlag(bestValue, αOrig, βOrig))
	}
	return bestValue
}

func (s *Solver) recordCutoff(m move.Move, maximizing bool, depth int) {
	if s.historyOptim {
		s.history.Update(m, maximizing, depth)
	}
}

// searchRoot searches every root move depth plies deep and returns the
// best one. Ties go to the move searched first. hint, if it is a legal
// move, is searched first.
func (s *Solver) searchRoot(ctx context.Context, pos board.Position, depth int,
	hint *move.Move) (float64, move.Move, error) {

	maximizing := pos.WhiteToMove()
	key := s.rootKey(pos)
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		passed := pos.Apply(move.Pass())
		value := s.alphabeta(ctx, passed, s.childKey(key, pos, passed), depth-1,
			-Infinity, Infinity, !maximizing)
		if ctx.Err() != nil {
			return value, move.Pass(), ErrSearchAborted
		}
		return value, move.Pass(), nil
	}
	moves = s.orderMoves(moves, maximizing, hint)

	α, β := -Infinity, Infinity
	bestMove := moves[0]
	bestValue := Infinity
	if maximizing {
		bestValue = -Infinity
	}
	for _, m := range moves {
		if ctx.Err() != nil {
			break
		}
		next := pos.Apply(m)
		value := s.alphabeta(ctx, next, s.childKey(key, pos, next), depth-1, α, β, !maximizing)
		if maximizing && value > bestValue {
			bestValue, bestMove = value, m
			α = math.Max(α, value)
		} else if !maximizing && value < bestValue {
			bestValue, bestMove = value, m
			β = math.Min(β, value)
		}
	}
	s.recordCutoff(bestMove, maximizing, depth)
	if ctx.Err() != nil {
		return bestValue, bestMove, ErrSearchAborted
	}
	return bestValue, bestMove, nil
}

// SolveDepth runs a single fixed-depth search of pos. It is bounded only
// by ctx; if ctx ends first it returns ErrSearchAborted along with the
// best move found so far.
func (s *Solver) SolveDepth(ctx context.Context, pos board.Position, depth int) (float64, move.Move, error) {
	if depth < 1 {
		return 0, move.Pass(), ErrInvalidDepth
	}
	s.prepare()
	value, m, err := s.searchRoot(ctx, pos, depth, nil)
	if err == nil {
		s.lastDepth = depth
	}
	s.logSolveStats(depth)
	return value, m, err
}
