package automatic

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/domino14/othello/config"
)

var DefaultConfig = config.DefaultConfig()

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func TestPlaySelfPlayGames(t *testing.T) {
	is := is.New(t)
	p1 := PlayerConfig{Evaluator: "phased", Depth: 2}
	p2 := PlayerConfig{Evaluator: "counting", Depth: 1}
	var movelog bytes.Buffer
	s, err := PlaySelfPlayGames(context.Background(), &DefaultConfig, p1, p2, 4, 2, 2, &movelog)
	is.NoErr(err)
	is.Equal(s.Games, 4)
	is.Equal(s.Results.Games(), 4)
	is.True(s.ScoreLow <= s.Score && s.Score <= s.ScoreHigh)
	is.True(s.MarginLow <= s.MarginMean && s.MarginMean <= s.MarginHigh)
	is.Equal(CVCCounter.Value(), int64(4))

	lines := strings.Split(strings.TrimSpace(movelog.String()), "\n")
	is.True(strings.HasPrefix(lines[0], "gameID,turn"))
	is.True(len(lines) > 4*20)

	var out bytes.Buffer
	is.NoErr(WriteSummary(&out, s))
	var back Summary
	is.NoErr(yaml.Unmarshal(out.Bytes(), &back))
	is.Equal(back.Games, 4)
	is.Equal(back.Player1, p1)
	is.Equal(back.Results, s.Results)
}

func TestPlaySelfPlayGamesErrors(t *testing.T) {
	is := is.New(t)
	p := PlayerConfig{Evaluator: "counting", Depth: 1}
	_, err := PlaySelfPlayGames(context.Background(), &DefaultConfig, p, p, 0, 1, 0, nil)
	is.True(errors.Is(err, ErrNoGames))

	_, err = PlaySelfPlayGames(context.Background(), &DefaultConfig, p,
		PlayerConfig{Evaluator: "bogus", Depth: 1}, 2, 1, 0, nil)
	is.True(err != nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = PlaySelfPlayGames(ctx, &DefaultConfig, p, p, 2, 1, 0, nil)
	is.True(errors.Is(err, context.Canceled))
}
