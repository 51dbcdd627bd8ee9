package automatic

// Data collection for automatic games: many engine-versus-engine games at
// once, with a summary at the end.

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/domino14/othello/config"
	"github.com/domino14/othello/stats"
)

const ConfidenceInterval = 95

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int

	ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")
	ErrNoGames        = errors.New("number of games must be positive")
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

var playing atomic.Bool

// Summary aggregates a self-play run from the first player's point of view.
type Summary struct {
	Games       int          `yaml:"games"`
	Player1     PlayerConfig `yaml:"player1"`
	Player2     PlayerConfig `yaml:"player2"`
	Results     stats.Tally  `yaml:"player1_results"`
	Score       float64      `yaml:"player1_score"`
	ScoreLow    float64      `yaml:"player1_score_low"`
	ScoreHigh   float64      `yaml:"player1_score_high"`
	MarginMean  float64      `yaml:"player1_margin_mean"`
	MarginStdev float64      `yaml:"player1_margin_stdev"`
	MarginLow   float64      `yaml:"player1_margin_low"`
	MarginHigh  float64      `yaml:"player1_margin_high"`
	Seconds     float64      `yaml:"elapsed_seconds"`
}

func summarize(p1, p2 PlayerConfig, results []GameResult, elapsed time.Duration) *Summary {
	margins := &stats.Statistic{}
	tally := stats.Tally{}
	for _, g := range results {
		m := g.P1Margin()
		margins.Push(float64(m))
		switch {
		case m > 0:
			tally.Wins++
		case m < 0:
			tally.Losses++
		default:
			tally.Draws++
		}
	}
	scoreLow, scoreHigh := tally.ScoreInterval(ConfidenceInterval)
	marginLow, marginHigh := stats.MeanInterval(margins, ConfidenceInterval)
	return &Summary{
		Games:       len(results),
		Player1:     p1,
		Player2:     p2,
		Results:     tally,
		Score:       tally.Score(),
		ScoreLow:    scoreLow,
		ScoreHigh:   scoreHigh,
		MarginMean:  margins.Mean(),
		MarginStdev: margins.Stdev(),
		MarginLow:   marginLow,
		MarginHigh:  marginHigh,
		Seconds:     elapsed.Seconds(),
	}
}

// WriteSummary writes s as YAML.
func WriteSummary(w io.Writer, s *Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// PlaySelfPlayGames plays numGames games between p1 and p2, threads at a
// time, alternating colors. Each game starts with openingPlies random
// moves. If movelog is not nil every move is written to it as a CSV line.
// Each game gets its own solvers, so games share no search state.
func PlaySelfPlayGames(ctx context.Context, cfg *config.Config, p1, p2 PlayerConfig,
	numGames, threads, openingPlies int, movelog io.Writer) (*Summary, error) {

	if numGames < 1 {
		return nil, ErrNoGames
	}
	if !playing.CompareAndSwap(false, true) {
		return nil, ErrAlreadyPlaying
	}
	defer playing.Store(false)
	threads = max(threads, 1)

	log.Debug().Msgf("Starting %v games, %v threads", numGames, threads)
	tstart := time.Now()
	CVCCounter.Set(0)

	var logChan chan string
	loggerDone := make(chan struct{})
	if movelog != nil {
		logChan = make(chan string, 100)
		go func() {
			defer close(loggerDone)
			io.WriteString(movelog, "gameID,turn,player,side,engine,move,value,white,black\n")
			for msg := range logChan {
				io.WriteString(movelog, msg)
			}
		}()
	} else {
		close(loggerDone)
	}

	results := make([]GameResult, numGames)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i := 0; i < numGames; i++ {
		i := i
		g.Go(func() error {
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			r, err := NewGameRunner(logChan, cfg, i+1, p1, p2)
			if err != nil {
				return err
			}
			res, err := r.PlayFullGame(gctx, i%2 == 0, openingPlies)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = res
			CVCCounter.Add(1)
			return nil
		})
	}
	err := g.Wait()
	if logChan != nil {
		close(logChan)
	}
	<-loggerDone
	if err != nil {
		return nil, err
	}

	s := summarize(p1, p2, results, time.Since(tstart))
	log.Info().Int("games", s.Games).Float64("p1-score", s.Score).
		Float64("p1-margin", s.MarginMean).Msg("selfplay-finished")
	return s, nil
}
