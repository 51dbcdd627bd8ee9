package zobrist

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/move"
)

func TestHashAfterMakingPlay(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize()

	pos := board.Initial()
	h := z.PositionHash(pos)
	for i := 0; i < 12 && !pos.IsTerminal(); i++ {
		moves := pos.LegalMoves()
		m := move.Pass()
		if len(moves) > 0 {
			m = moves[i%len(moves)]
		}
		next := pos.Apply(m)
		h = z.AddMove(h, pos, next)
		pos = next
		is.Equal(h, z.PositionHash(pos))
	}
}

func TestHashAfterPassing(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize()

	pos := board.ForcedPass.Position()
	passed := pos.Apply(move.Pass())
	h := z.PositionHash(pos)
	h1 := z.AddMove(h, pos, passed)
	is.True(h1 != h)
	is.Equal(h1, z.PositionHash(passed))
	// a second pass restores the original key
	h2 := z.AddMove(h1, passed, passed.Apply(move.Pass()))
	is.Equal(h, h2)
}

func TestHashDistinguishesNodes(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize()

	key := z.PositionHash(board.Initial())
	is.True(z.Hash(key, true, 3) != z.Hash(key, false, 3))
	is.True(z.Hash(key, true, 3) != z.Hash(key, true, 4))
	is.Equal(z.Hash(key, true, 3), z.Hash(key, true, 3))
	is.Equal(z.Hash(key, true, MaxDepth+10), z.Hash(key, true, MaxDepth))
}
