// Package automatic plays engine-versus-engine Othello games, for
// comparing evaluators and search settings against each other.
package automatic

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/othello/alphabeta"
	"github.com/domino14/othello/board"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/eval"
	"github.com/domino14/othello/move"
)

const (
	DefaultDepth = 3
)

var ErrBadPlayerSpec = errors.New("bad player spec")

// PlayerConfig describes one engine. Exactly one of Depth and TimePerMove
// should be set; Depth wins if both are.
type PlayerConfig struct {
	Evaluator   string        `yaml:"evaluator"`
	Depth       int           `yaml:"depth,omitempty"`
	TimePerMove time.Duration `yaml:"time_per_move,omitempty"`
}

func (p PlayerConfig) String() string {
	if p.Depth > 0 {
		return fmt.Sprintf("%s:%d", p.Evaluator, p.Depth)
	}
	return fmt.Sprintf("%s:%v", p.Evaluator, p.TimePerMove)
}

// ParsePlayer parses "evaluator", "evaluator:depth" or
// "evaluator:duration", e.g. "phased:4" or "counting:250ms".
func ParsePlayer(spec string) (PlayerConfig, error) {
	name, limit, found := strings.Cut(spec, ":")
	e, err := eval.ByName(name)
	if err != nil {
		return PlayerConfig{}, fmt.Errorf("%w: %w", ErrBadPlayerSpec, err)
	}
	p := PlayerConfig{Evaluator: eval.Name(e), Depth: DefaultDepth}
	if !found {
		return p, nil
	}
	if d, err := strconv.Atoi(limit); err == nil {
		if d < 1 {
			return PlayerConfig{}, fmt.Errorf("%w: depth must be positive in %q", ErrBadPlayerSpec, spec)
		}
		p.Depth = d
		return p, nil
	}
	dur, err := time.ParseDuration(limit)
	if err != nil || dur <= 0 {
		return PlayerConfig{}, fmt.Errorf("%w: %q needs a depth or a positive duration", ErrBadPlayerSpec, spec)
	}
	p.Depth = 0
	p.TimePerMove = dur
	return p, nil
}

// GameResult is the outcome of one finished game.
type GameResult struct {
	WhiteDiscs int
	BlackDiscs int
	// P1White is true if the first player had the white discs.
	P1White bool
	Moves   []move.Move
}

// P1Margin returns the first player's disc margin.
func (g GameResult) P1Margin() int {
	if g.P1White {
		return g.WhiteDiscs - g.BlackDiscs
	}
	return g.BlackDiscs - g.WhiteDiscs
}

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	config  *config.Config
	logchan chan string
	gameID  int

	players [2]PlayerConfig
	solvers [2]*alphabeta.Solver

	pos     board.Position
	p1White bool
	moves   []move.Move
}

// NewGameRunner just instantiates and initializes a game runner.
func NewGameRunner(logchan chan string, cfg *config.Config, gameID int,
	player1, player2 PlayerConfig) (*GameRunner, error) {

	r := &GameRunner{logchan: logchan, config: cfg, gameID: gameID}
	if err := r.Init(player1, player2); err != nil {
		return nil, err
	}
	return r, nil
}

// Init initializes the runner
func (r *GameRunner) Init(player1, player2 PlayerConfig) error {
	for idx, p := range []PlayerConfig{player1, player2} {
		e, err := eval.ByName(p.Evaluator)
		if err != nil {
			return err
		}
		s := &alphabeta.Solver{}
		if err := s.Init(e, r.config); err != nil {
			return err
		}
		r.players[idx] = p
		r.solvers[idx] = s
	}
	return nil
}

// StartGame sets up the initial position and plays openingPlies random
// moves. If p1White is false the second player takes White.
func (r *GameRunner) StartGame(p1White bool, openingPlies int) {
	r.pos = board.Initial()
	r.p1White = p1White
	r.moves = r.moves[:0]
	for i := 0; i < openingPlies && !r.pos.IsTerminal(); i++ {
		moves := r.pos.LegalMoves()
		m := move.Pass()
		if len(moves) > 0 {
			m = moves[frand.Intn(len(moves))]
		}
		r.play(m)
	}
}

func (r *GameRunner) Position() board.Position {
	return r.pos
}

func (r *GameRunner) Playing() bool {
	return !r.pos.IsTerminal()
}

// playerOnTurn returns 0 or 1: the index of the player with the move.
func (r *GameRunner) playerOnTurn() int {
	if r.pos.WhiteToMove() == r.p1White {
		return 0
	}
	return 1
}

func (r *GameRunner) play(m move.Move) {
	r.pos = r.pos.Apply(m)
	r.moves = append(r.moves, m)
}

func (r *GameRunner) genBestMove(ctx context.Context) (float64, move.Move, error) {
	idx := r.playerOnTurn()
	p, s := r.players[idx], r.solvers[idx]
	if !r.pos.HasLegalMove() {
		return 0, move.Pass(), nil
	}
	if p.Depth > 0 {
		return s.SolveDepth(ctx, r.pos, p.Depth)
	}
	return s.Solve(ctx, r.pos, p.TimePerMove)
}

// PlayBestTurn searches for the side to move and plays the result.
func (r *GameRunner) PlayBestTurn(ctx context.Context) error {
	idx := r.playerOnTurn()
	value, m, err := r.genBestMove(ctx)
	if err != nil {
		return err
	}
	side := r.pos.SideToMove()
	next, err := r.pos.PlayMove(m)
	if err != nil {
		return err
	}
	r.pos = next
	r.moves = append(r.moves, m)

	if r.logchan != nil {
		w, b := r.pos.Count()
		r.logchan <- fmt.Sprintf("%d,%d,p%d,%v,%s,%s,%.2f,%d,%d\n",
			r.gameID, len(r.moves), idx+1, side, r.players[idx], m, value, w, b)
	}
	return nil
}

// PlayFullGame plays a game to the end.
func (r *GameRunner) PlayFullGame(ctx context.Context, p1White bool, openingPlies int) (GameResult, error) {
	r.StartGame(p1White, openingPlies)
	for r.Playing() {
		if err := ctx.Err(); err != nil {
			return GameResult{}, err
		}
		if err := r.PlayBestTurn(ctx); err != nil {
			return GameResult{}, err
		}
	}
	w, b := r.pos.Count()
	log.Debug().Int("game", r.gameID).Int("white", w).Int("black", b).Msg("game-over")
	return GameResult{
		WhiteDiscs: w,
		BlackDiscs: b,
		P1White:    r.p1White,
		Moves:      append([]move.Move(nil), r.moves...),
	}, nil
}
