package automatic

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/config"
)

func defaultRunner(t *testing.T, logchan chan string) *GameRunner {
	t.Helper()
	p := PlayerConfig{Evaluator: DefaultConfig.GetString(config.ConfigEvaluator), Depth: DefaultDepth}
	r, err := NewGameRunner(logchan, &DefaultConfig, 0, p, p)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestParsePlayer(t *testing.T) {
	is := is.New(t)
	p, err := ParsePlayer("phased")
	is.NoErr(err)
	is.Equal(p, PlayerConfig{Evaluator: "phased", Depth: DefaultDepth})

	p, err = ParsePlayer("Counting:5")
	is.NoErr(err)
	is.Equal(p, PlayerConfig{Evaluator: "counting", Depth: 5})

	p, err = ParsePlayer("phased:250ms")
	is.NoErr(err)
	is.Equal(p, PlayerConfig{Evaluator: "phased", TimePerMove: 250 * time.Millisecond})
	is.Equal(p.String(), "phased:250ms")

	p, err = ParsePlayer("Counting*2+phased:4")
	is.NoErr(err)
	is.Equal(p, PlayerConfig{Evaluator: "counting*2+phased", Depth: 4})

	for _, bad := range []string{"bogus", "counting+bogus:2", "phased:0", "phased:-1s", "phased:soon"} {
		_, err = ParsePlayer(bad)
		is.True(errors.Is(err, ErrBadPlayerSpec))
	}
}

func TestStartGameRandomOpening(t *testing.T) {
	is := is.New(t)
	r := defaultRunner(t, nil)
	r.StartGame(true, 0)
	is.Equal(r.Position(), board.Initial())

	r.StartGame(false, 4)
	w, b := r.Position().Count()
	is.Equal(w+b, 8)
	is.Equal(len(r.moves), 4)
	is.Equal(r.playerOnTurn(), 1) // White to move belongs to player 2
}

func TestPlayBestTurn(t *testing.T) {
	is := is.New(t)
	logchan := make(chan string, 10)
	r := defaultRunner(t, logchan)
	r.StartGame(true, 0)
	is.NoErr(r.PlayBestTurn(context.Background()))
	is.Equal(len(r.moves), 1)
	is.NoErr(board.Initial().ValidateMove(r.moves[0]))
	is.True(!r.Position().WhiteToMove())
	is.True(strings.HasPrefix(<-logchan, "0,1,p1,white,phased:3,"))
}

func TestPlayFullGame(t *testing.T) {
	is := is.New(t)
	r := &GameRunner{config: &DefaultConfig}
	is.NoErr(r.Init(PlayerConfig{Evaluator: "phased", Depth: 2}, PlayerConfig{Evaluator: "counting", Depth: 1}))
	res, err := r.PlayFullGame(context.Background(), false, 2)
	is.NoErr(err)
	is.True(r.Position().IsTerminal())
	is.Equal(res.P1White, false)
	is.Equal(res.P1Margin(), res.BlackDiscs-res.WhiteDiscs)

	// replaying the moves reaches the same final position
	pos := board.Initial()
	for _, m := range res.Moves {
		pos, err = pos.PlayMove(m)
		is.NoErr(err)
	}
	is.Equal(pos, r.Position())
	w, b := pos.Count()
	is.Equal(w, res.WhiteDiscs)
	is.Equal(b, res.BlackDiscs)
}

func TestPlayFullGameCanceled(t *testing.T) {
	is := is.New(t)
	r := defaultRunner(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.PlayFullGame(ctx, true, 0)
	is.True(errors.Is(err, context.Canceled))
}

func TestInitRejectsUnknownEvaluator(t *testing.T) {
	is := is.New(t)
	_, err := NewGameRunner(nil, &DefaultConfig, 1,
		PlayerConfig{Evaluator: "bogus", Depth: 1}, PlayerConfig{Evaluator: "phased", Depth: 1})
	is.True(err != nil)
}
