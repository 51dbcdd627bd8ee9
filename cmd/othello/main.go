// Command othello prints the move the engine picks for a position within a
// time limit: (row,col) or pass.
//
//	othello [flags] <position> <seconds>
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/othello/alphabeta"
	"github.com/domino14/othello/board"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/eval"
)

const usageLine = "Usage: othello [flags] <position_string> <time_limit>"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func fail(stderr io.Writer, format string, a ...any) int {
	fmt.Fprintf(stderr, "Error: "+format+"\n", a...)
	return 1
}

func setupLogging(cfg *config.Config, stderr io.Writer) {
	level := zerolog.WarnLevel
	if cfg.GetBool(config.ConfigDebug) {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}).
		Level(level).With().Timestamp().Logger()
}

// parseTimeLimit reads a positive number of seconds.
func parseTimeLimit(arg string) (time.Duration, error) {
	secs, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, err
	}
	if !(secs > 0) {
		return 0, fmt.Errorf("%v is not a positive number of seconds", arg)
	}
	return alphabeta.TimeLimitFromSeconds(secs), nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg := &config.Config{}
	if err := cfg.Load(args); err != nil {
		return fail(stderr, "%v", err)
	}
	setupLogging(cfg, stderr)

	positional := cfg.Args()
	switch {
	case len(positional) < 2:
		return fail(stderr, "Too few arguments. %s", usageLine)
	case len(positional) > 2:
		return fail(stderr, "Too many arguments. %s", usageLine)
	}
	posString, timeArg := positional[0], positional[1]
	if posString == "" {
		return fail(stderr, "Position string is missing.")
	}
	if timeArg == "" {
		return fail(stderr, "Time limit argument is missing.")
	}
	if _, err := strconv.ParseFloat(timeArg, 64); err != nil {
		return fail(stderr, "Time limit must be a number.")
	}
	limit, err := parseTimeLimit(timeArg)
	if err != nil {
		return fail(stderr, "Time limit must be positive: %v", err)
	}
	pos, err := board.FromString(posString)
	if err != nil {
		return fail(stderr, "%v", err)
	}

	e, err := eval.ByName(cfg.GetString(config.ConfigEvaluator))
	if err != nil {
		return fail(stderr, "%v", err)
	}
	solver := &alphabeta.Solver{}
	if err := solver.Init(e, cfg); err != nil {
		return fail(stderr, "%v", err)
	}
	_, m, err := solver.Solve(ctx, pos, limit)
	if err != nil {
		return fail(stderr, "%v", err)
	}
	fmt.Fprintln(stdout, m.String())
	return 0
}
