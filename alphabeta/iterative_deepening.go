package alphabeta

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/move"
)

// TimeBudget decides how much of a time limit the iterative deepening
// driver uses, and how that time is handed out to each depth.
type TimeBudget struct {
	// ShortScale applies to limits under Threshold, LongScale to the rest.
	ShortScale float64
	LongScale  float64
	Threshold  time.Duration
	// Floor is the least usable time. It never exceeds the limit itself.
	Floor time.Duration
	// No new depth starts with less than MinRemaining left.
	MinRemaining time.Duration
	// Each depth gets DepthFraction of what remains, but at least
	// MinDepthTime.
	DepthFraction float64
	MinDepthTime  time.Duration
}

func DefaultTimeBudget() TimeBudget {
	return TimeBudget{
		ShortScale:    0.5,
		LongScale:     0.45,
		Threshold:     8 * time.Second,
		Floor:         120 * time.Millisecond,
		MinRemaining:  80 * time.Millisecond,
		DepthFraction: 0.85,
		MinDepthTime:  40 * time.Millisecond,
	}
}

func TimeBudgetFromConfig(cfg *config.Config) TimeBudget {
	return TimeBudget{
		ShortScale:    cfg.GetFloat64(config.ConfigTimeScaleShort),
		LongScale:     cfg.GetFloat64(config.ConfigTimeScaleLong),
		Threshold:     cfg.GetDuration(config.ConfigTimeScaleThreshold),
		Floor:         cfg.GetDuration(config.ConfigTimeFloor),
		MinRemaining:  cfg.GetDuration(config.ConfigMinRemaining),
		DepthFraction: cfg.GetFloat64(config.ConfigDepthFraction),
		MinDepthTime:  cfg.GetDuration(config.ConfigMinDepthTime),
	}
}

// Usable returns the part of limit the driver may spend searching.
func (b TimeBudget) Usable(limit time.Duration) time.Duration {
	scale := b.LongScale
	if limit < b.Threshold {
		scale = b.ShortScale
	}
	usable := time.Duration(float64(limit) * scale)
	usable = max(usable, b.Floor)
	return min(usable, limit)
}

// Allowance returns the time for the next depth given what remains of the
// usable time, and false if no further depth should start.
func (b TimeBudget) Allowance(remaining time.Duration) (time.Duration, bool) {
	if remaining < b.MinRemaining {
		return 0, false
	}
	allowance := time.Duration(float64(remaining) * b.DepthFraction)
	return max(allowance, b.MinDepthTime), true
}

// TimeLimitFromSeconds converts a time limit in seconds to a Duration.
// Limits too long to represent become the longest Duration.
func TimeLimitFromSeconds(secs float64) time.Duration {
	d := secs * float64(time.Second)
	if d >= math.MaxInt64 {
		return math.MaxInt64
	}
	return time.Duration(d)
}

// maxUsefulDepth is a depth past which every line has ended: each ply
// fills a square or passes, and two passes in a row end the game.
func maxUsefulDepth(pos board.Position) int {
	return 2*pos.Empties() + 1
}

// searchIteration runs one depth of the iterative deepening loop. A panic
// inside the search comes back as an error.
func (s *Solver) searchIteration(ctx context.Context, pos board.Position, depth int,
	hint *move.Move) (value float64, best move.Move, err error) {

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSearchPanicked, r)
		}
	}()
	return s.searchRoot(ctx, pos, depth, hint)
}

// Solve picks a move for pos using at most timeLimit of wall-clock time.
// It searches depth 1, 2, 3... each with a shrinking share of the budget
// and keeps the result of the deepest depth that finished in time. The
// best move of each depth is searched first at the next. The returned
// value is the score of that depth. Without one it is a static
// evaluation: of the position after the move when the move was forced,
// of pos otherwise.
func (s *Solver) Solve(ctx context.Context, pos board.Position, timeLimit time.Duration) (float64, move.Move, error) {
	if timeLimit <= 0 {
		return 0, move.Pass(), fmt.Errorf("%w: got %v", ErrInvalidTimeLimit, timeLimit)
	}
	tstart := time.Now()
	s.prepare()

	moves := pos.LegalMoves()
	switch len(moves) {
	case 0:
		log.Debug().Msg("no-legal-moves-passing")
		return s.evaluator.Evaluate(pos.Apply(move.Pass())), move.Pass(), nil
	case 1:
		log.Debug().Str("move", moves[0].String()).Msg("single-legal-move")
		return s.evaluator.Evaluate(pos.Apply(moves[0])), moves[0], nil
	}

	usable := s.budget.Usable(timeLimit)
	maxDepth := min(s.maxDepth, maxUsefulDepth(pos))
	log.Debug().Dur("limit", timeLimit).Dur("usable", usable).
		Int("max-depth", maxDepth).Msg("solve-config")

	var hint *move.Move
	bestMove := moves[0]
	bestValue := s.evaluator.Evaluate(pos)

	for depth := 1; depth <= maxDepth; depth++ {
		if ctx.Err() != nil {
			break
		}
		allowance, ok := s.budget.Allowance(usable - time.Since(tstart))
		if !ok {
			break
		}
		log.Debug().Int("plies", depth).Dur("allowance", allowance).Msg("deepening-iteratively")

		depthCtx, cancel := context.WithTimeout(ctx, allowance)
		value, m, err := s.searchIteration(depthCtx, pos, depth, hint)
		cancel()
		if err != nil {
			if !errors.Is(err, ErrSearchAborted) {
				log.Err(err).Int("plies", depth).Msg("alphabeta-error")
			}
			break
		}
		bestValue, bestMove = value, m
		hint = &bestMove
		s.lastDepth = depth
		log.Debug().Float64("value", value).Int("ply", depth).
			Str("move", m.String()).Msg("best-val")
	}
	s.logSolveStats(s.lastDepth)
	log.Debug().Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Str("move", bestMove.String()).Msg("solve-finished")
	return bestValue, bestMove, nil
}

func (s *Solver) logSolveStats(depth int) {
	log.Debug().
		Int("depth", depth).
		Uint64("nodes", s.nodes.Load()).
		Uint64("ttable-created", s.ttable.created.Load()).
		Uint64("ttable-lookups", s.ttable.lookups.Load()).
		Uint64("ttable-hits", s.ttable.hits.Load()).
		Uint64("ttable-resets", s.ttable.resets.Load()).
		Uint64("ttable-collisions", s.ttable.collisions.Load()).
		Int("history-buckets", s.history.Len()).
		Msg("solve-returning")
}
