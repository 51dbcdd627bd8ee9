package alphabeta

import (
	"context"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/eval"
	"github.com/domino14/othello/move"
	"github.com/domino14/othello/zobrist"
)

func TestTranspositionTableBounds(t *testing.T) {
	is := is.New(t)
	tt := &TranspositionTable{}
	tt.Reset(100)
	pos := board.Initial()

	tt.store(tt.positionKey(pos), pos, true, 3, 10, TTExact)
	v, ok := tt.lookup(tt.positionKey(pos), pos, true, 3, -Infinity, Infinity)
	is.True(ok)
	is.Equal(v, 10.0)
	// different depth or side is a different node
	_, ok = tt.lookup(tt.positionKey(pos), pos, true, 2, -Infinity, Infinity)
	is.True(!ok)
	_, ok = tt.lookup(tt.positionKey(pos), pos, false, 3, -Infinity, Infinity)
	is.True(!ok)

	// a lower bound only answers when it reaches β
	tt.store(tt.positionKey(pos), pos, true, 4, 10, TTLower)
	_, ok = tt.lookup(tt.positionKey(pos), pos, true, 4, 0, 20)
	is.True(!ok)
	v, ok = tt.lookup(tt.positionKey(pos), pos, true, 4, 0, 10)
	is.True(ok)
	is.Equal(v, 10.0)

	// an upper bound only answers when it is at most α
	tt.store(tt.positionKey(pos), pos, true, 5, 10, TTUpper)
	_, ok = tt.lookup(tt.positionKey(pos), pos, true, 5, 5, 20)
	is.True(!ok)
	_, ok = tt.lookup(tt.positionKey(pos), pos, true, 5, 10, 20)
	is.True(ok)

	is.Equal(tt.lookups.Load(), uint64(7))
	is.Equal(tt.hits.Load(), uint64(3))
	is.Equal(tt.created.Load(), uint64(3))
}

func TestTranspositionTableCollision(t *testing.T) {
	is := is.New(t)
	tt := &TranspositionTable{}
	// an uninitialized zobrist hashes every node to 0
	tt.SetZobrist(&zobrist.Zobrist{})
	tt.Reset(100)
	a := board.Initial()
	b := a.Apply(move.NewPlacement(3, 5))

	tt.store(tt.positionKey(a), a, true, 2, 1, TTExact)
	_, ok := tt.lookup(tt.positionKey(b), b, true, 2, -Infinity, Infinity)
	is.True(!ok)
	is.Equal(tt.collisions.Load(), uint64(1))
	v, ok := tt.lookup(tt.positionKey(a), a, true, 2, -Infinity, Infinity)
	is.True(ok)
	is.Equal(v, 1.0)
}

func TestTranspositionTableClearsWhenFull(t *testing.T) {
	is := is.New(t)
	tt := &TranspositionTable{}
	tt.Reset(3)
	pos := board.Initial()
	for d := 1; d <= 4; d++ {
		tt.store(tt.positionKey(pos), pos, true, d, float64(d), TTExact)
	}
	is.Equal(tt.Len(), 4)
	tt.store(tt.positionKey(pos), pos, true, 5, 5, TTExact)
	is.Equal(tt.Len(), 1)
	is.Equal(tt.resets.Load(), uint64(1))
	_, ok := tt.lookup(tt.positionKey(pos), pos, true, 1, -Infinity, Infinity)
	is.True(!ok)
}

func TestBoundFlag(t *testing.T) {
	is := is.New(t)
	is.Equal(boundFlag(1, 1, 5), uint8(TTUpper))
	is.Equal(boundFlag(5, 1, 5), uint8(TTLower))
	is.Equal(boundFlag(3, 1, 5), uint8(TTExact))
	is.Equal(boundFlag(3, -Infinity, Infinity), uint8(TTExact))
}

func TestSearchKeysMatchFullHash(t *testing.T) {
	is := is.New(t)
	s := newSolver(t, eval.NewPhased(), nil)
	for _, pos := range []board.Position{
		board.Initial(), board.ForcedPass.Position(), board.TwoEmpties.Position()} {

		_, _, err := s.SolveDepth(context.Background(), pos, 4)
		is.NoErr(err)
		tt := s.TranspositionTable()
		is.True(tt.Len() > 0)
		for key, entry := range tt.table {
			posKey := tt.zobrist.PositionHash(entry.pos)
			is.Equal(key, tt.zobrist.Hash(posKey, entry.maximizing, int(entry.depth)))
		}
	}
}
