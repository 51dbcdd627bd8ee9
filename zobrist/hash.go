package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/othello/board"
)

const bignum = 1<<63 - 2

// MaxDepth is the largest remaining depth that gets its own key. Deeper
// searches share the last key.
const MaxDepth = 128

// generate a zobrist hash for an Othello search node.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	whiteToMove uint64
	maximizing  uint64

	// posTable[square][color-1]
	posTable   [board.NumSquares][2]uint64
	depthTable [MaxDepth + 1]uint64
}

func (z *Zobrist) Initialize() {
	for i := 0; i < board.NumSquares; i++ {
		for j := 0; j < 2; j++ {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	for i := range z.depthTable {
		z.depthTable[i] = frand.Uint64n(bignum) + 1
	}
	z.whiteToMove = frand.Uint64n(bignum) + 1
	z.maximizing = frand.Uint64n(bignum) + 1
}

// Hash returns the key of the search node (pos, maximizing, depth), given
// posKey, the PositionHash of pos.
func (z *Zobrist) Hash(posKey uint64, maximizing bool, depth int) uint64 {
	key := posKey
	if maximizing {
		key ^= z.maximizing
	}
	if depth > MaxDepth {
		depth = MaxDepth
	}
	if depth < 0 {
		depth = 0
	}
	key ^= z.depthTable[depth]
	return key
}

// PositionHash hashes the discs and the side to move only.
func (z *Zobrist) PositionHash(pos board.Position) uint64 {
	key := uint64(0)
	for r := 1; r <= board.BoardDim; r++ {
		for c := 1; c <= board.BoardDim; c++ {
			cell := pos.At(r, c)
			if cell == board.Empty {
				continue
			}
			key ^= z.posTable[(r-1)*board.BoardDim+c-1][cell-1]
		}
	}
	if pos.WhiteToMove() {
		key ^= z.whiteToMove
	}
	return key
}

// AddMove updates the PositionHash key of before to that of after, where
// after follows before by one move. Flipped discs change color, so each
// one is XORed out and back in.
func (z *Zobrist) AddMove(key uint64, before, after board.Position) uint64 {
	if before.WhiteToMove() != after.WhiteToMove() {
		key ^= z.whiteToMove
	}
	for r := 1; r <= board.BoardDim; r++ {
		for c := 1; c <= board.BoardDim; c++ {
			b, a := before.At(r, c), after.At(r, c)
			if a == b {
				continue
			}
			sq := (r-1)*board.BoardDim + c - 1
			if b != board.Empty {
				key ^= z.posTable[sq][b-1]
			}
			key ^= z.posTable[sq][a-1]
		}
	}
	return key
}
