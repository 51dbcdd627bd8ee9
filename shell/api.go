package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/othello/alphabeta"
	"github.com/domino14/othello/automatic"
	"github.com/domino14/othello/board"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/eval"
	"github.com/domino14/othello/move"
)

const defaultMoveTime = time.Second

var errGameOver = errors.New("the game is over")

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return usage("standard")
	}
	return usageTopic(cmd.args[0])
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	sc.setPosition(board.Initial())
	return sc.show(cmd)
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("load takes a single 65-character position string")
	}
	pos, err := board.FromString(cmd.args[0])
	if err != nil {
		return nil, err
	}
	sc.setPosition(pos)
	return sc.show(cmd)
}

func (sc *ShellController) setPosition(pos board.Position) {
	sc.pos = pos
	sc.history = nil
	sc.curGenPlays = nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	var sb strings.Builder
	sb.WriteString(sc.pos.ToDisplayText())
	sb.WriteString(sc.pos.String())
	if sc.pos.IsTerminal() {
		w, b := sc.pos.Count()
		sb.WriteString(fmt.Sprintf("\nGame over: White %d, Black %d", w, b))
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) generate(cmd *shellcmd) (*Response, error) {
	moves := sc.pos.LegalMoves()
	sc.curGenPlays = moves
	if len(moves) == 0 {
		if sc.pos.IsTerminal() {
			return nil, errGameOver
		}
		return msg("No legal moves; " + sc.pos.SideToMove().String() + " must pass"), nil
	}
	rows := lo.Map(moves, func(m move.Move, idx int) string {
		return fmt.Sprintf("%3d: %-7s %-4s flips %d", idx+1, m.String(), m.ShortDescription(),
			sc.pos.Flips(m))
	})
	return msg(strings.Join(rows, "\n")), nil
}

func (sc *ShellController) parseMove(args []string) (move.Move, error) {
	switch len(args) {
	case 1:
		if strings.HasPrefix(args[0], "#") {
			playID, err := strconv.Atoi(args[0][1:])
			if err != nil {
				return move.Move{}, err
			}
			idx := playID - 1 // since playID starts from 1
			if idx < 0 || idx > len(sc.curGenPlays)-1 {
				return move.Move{}, errors.New("play outside range")
			}
			return sc.curGenPlays[idx], nil
		}
		return move.FromString(args[0])
	case 2:
		return move.FromString(args[0] + "," + args[1])
	}
	return move.Move{}, errors.New("usage: play <row> <col>, play (row,col), play #n or play pass")
}

func (sc *ShellController) commit(m move.Move) error {
	next, err := sc.pos.PlayMove(m)
	if err != nil {
		return err
	}
	sc.history = append(sc.history, sc.pos)
	sc.pos = next
	sc.curGenPlays = nil
	return nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.pos.IsTerminal() {
		return nil, errGameOver
	}
	m, err := sc.parseMove(cmd.args)
	if err != nil {
		return nil, err
	}
	if err := sc.commit(m); err != nil {
		return nil, err
	}
	return sc.show(cmd)
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if len(sc.history) == 0 {
		return nil, errors.New("nothing to undo")
	}
	sc.pos = sc.history[len(sc.history)-1]
	sc.history = sc.history[:len(sc.history)-1]
	sc.curGenPlays = nil
	return sc.show(cmd)
}

func parseSeconds(args []string) (time.Duration, error) {
	if len(args) == 0 {
		return defaultMoveTime, nil
	}
	secs, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, fmt.Errorf("time limit must be a number of seconds: %w", err)
	}
	if !(secs > 0) {
		return 0, errors.New("time limit must be positive")
	}
	return alphabeta.TimeLimitFromSeconds(secs), nil
}

func (sc *ShellController) searchResult(value float64, m move.Move) *Response {
	return msg(fmt.Sprintf("Best move: %v (value %.2f, depth %d, %d nodes, %s evaluator)",
		m, value, sc.solver.LastCompletedDepth(), sc.solver.Nodes(), eval.Name(sc.solver.Evaluator())))
}

func (sc *ShellController) best(cmd *shellcmd) (*Response, error) {
	if sc.pos.IsTerminal() {
		return nil, errGameOver
	}
	limit, err := parseSeconds(cmd.args)
	if err != nil {
		return nil, err
	}
	value, m, err := sc.solver.Solve(context.Background(), sc.pos, limit)
	if err != nil {
		return nil, err
	}
	return sc.searchResult(value, m), nil
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: solve <depth>")
	}
	depth, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if sc.pos.IsTerminal() {
		return nil, errGameOver
	}
	value, m, err := sc.solver.SolveDepth(context.Background(), sc.pos, depth)
	if err != nil {
		return nil, err
	}
	return sc.searchResult(value, m), nil
}

func (sc *ShellController) evaluate(cmd *shellcmd) (*Response, error) {
	var sb strings.Builder
	for _, name := range []string{eval.CountingName, eval.PhasedName} {
		e, err := eval.ByName(name)
		if err != nil {
			return nil, err
		}
		sb.WriteString(fmt.Sprintf("%-9s %.2f\n", name+":", e.Evaluate(sc.pos)))
	}
	sb.WriteString(fmt.Sprintf("%-9s %d\n", "mobility:", eval.Mobility(sc.pos)))
	sb.WriteString("(positive favors White)")
	return msg(sb.String()), nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "on", "1":
		return true, nil
	case "false", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("%q is not true or false", s)
}

// set changes a search setting. Changing the evaluator rebuilds the solver,
// which turns the table optimizations back on.
func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: set <evaluator|max-depth|tt|history|time budget key> <value>")
	}
	key, value := cmd.args[0], cmd.args[1]
	switch key {
	case "evaluator":
		e, err := eval.ByName(value)
		if err != nil {
			return nil, err
		}
		sc.config.Set(config.ConfigEvaluator, eval.Name(e))
		if err := sc.solver.Init(e, sc.config); err != nil {
			return nil, err
		}
	case "max-depth":
		d, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		if d < 1 {
			return nil, errors.New("max-depth must be positive")
		}
		sc.config.Set(config.ConfigMaxDepth, d)
		sc.solver.SetMaxDepth(d)
	case "tt":
		b, err := parseBool(value)
		if err != nil {
			return nil, err
		}
		sc.solver.SetTranspositionTableOptim(b)
	case "history":
		b, err := parseBool(value)
		if err != nil {
			return nil, err
		}
		sc.solver.SetHistoryOptim(b)
	case config.ConfigTimeScaleShort, config.ConfigTimeScaleLong, config.ConfigDepthFraction:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, err
		}
		if !(f > 0 && f <= 1) {
			return nil, fmt.Errorf("%s must be in (0, 1]", key)
		}
		sc.config.Set(key, f)
		return sc.budgetChanged(key, value), nil
	case config.ConfigTimeScaleThreshold, config.ConfigTimeFloor,
		config.ConfigMinRemaining, config.ConfigMinDepthTime:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, err
		}
		if d < 0 {
			return nil, fmt.Errorf("%s must not be negative", key)
		}
		sc.config.Set(key, d)
		return sc.budgetChanged(key, value), nil
	default:
		return nil, fmt.Errorf("unknown setting %q", key)
	}
	log.Debug().Str("key", key).Str("value", value).Msg("setting-changed")
	return msg(key + " set to " + value), nil
}

// autoplay lets the engine play both sides from the current position to
// the end of the game.
func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if sc.pos.IsTerminal() {
		return nil, errGameOver
	}
	limit, err := parseSeconds(cmd.args)
	if err != nil {
		return nil, err
	}
	var played []string
	for !sc.pos.IsTerminal() {
		_, m, err := sc.solver.Solve(context.Background(), sc.pos, limit)
		if err != nil {
			return nil, err
		}
		if err := sc.commit(m); err != nil {
			return nil, err
		}
		played = append(played, m.String())
	}
	resp, err := sc.show(cmd)
	if err != nil {
		return nil, err
	}
	resp.message = "Moves: " + strings.Join(played, " ") + "\n" + resp.message
	return resp, nil
}

func (sc *ShellController) selfplay(cmd *shellcmd) (*Response, error) {
	numGames := sc.config.GetInt(config.ConfigSelfplayGames)
	depth := automatic.DefaultDepth
	var err error
	if len(cmd.args) > 0 {
		if numGames, err = strconv.Atoi(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	if len(cmd.args) > 1 {
		if depth, err = strconv.Atoi(cmd.args[1]); err != nil {
			return nil, err
		}
		if depth < 1 {
			return nil, errors.New("depth must be positive")
		}
	}
	p := automatic.PlayerConfig{Evaluator: sc.config.GetString(config.ConfigEvaluator), Depth: depth}
	players := []automatic.PlayerConfig{p, p}
	for i, key := range []string{"p1", "p2"} {
		if spec := cmd.options.String(key); spec != "" {
			if players[i], err = automatic.ParsePlayer(spec); err != nil {
				return nil, err
			}
		}
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigSelfplayThreads))
	if err != nil {
		return nil, err
	}
	plies, err := cmd.options.IntDefault("plies", sc.config.GetInt(config.ConfigSelfplayRandomOpeningPlies))
	if err != nil {
		return nil, err
	}
	var movelog io.Writer
	if logfile := cmd.options.String("log"); logfile != "" {
		f, err := os.Create(logfile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		movelog = f
	}

	summary, err := automatic.PlaySelfPlayGames(context.Background(), sc.config,
		players[0], players[1], numGames, threads, plies, movelog)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	if err := automatic.WriteSummary(&sb, summary); err != nil {
		return nil, err
	}
	if out := sc.config.GetString(config.ConfigSelfplayOutput); out != "" {
		if err := os.WriteFile(out, []byte(sb.String()), 0o644); err != nil {
			return nil, err
		}
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) budgetChanged(key, value string) *Response {
	sc.solver.SetTimeBudget(alphabeta.TimeBudgetFromConfig(sc.config))
	log.Debug().Str("key", key).Str("value", value).Msg("time-budget-changed")
	return msg(fmt.Sprintf("%s set to %s; a %v limit now searches for up to %v",
		key, value, defaultMoveTime, sc.solver.TimeBudget().Usable(defaultMoveTime)))
}
