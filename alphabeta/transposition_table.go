package alphabeta

import (
	"sync/atomic"
	"unsafe"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/zobrist"
)

const (
	TTExact = 0x01
	TTLower = 0x02
	TTUpper = 0x03
)

// map buckets cost roughly this much on top of the entry itself.
const mapOverheadBytes = 16

// A single table may not use more than this fraction of system memory.
const maxMemoryFraction = 0.25

// TableEntry stores the full position, so a zobrist collision is detected
// rather than returned as a hit.
type TableEntry struct {
	pos        board.Position
	score      float64
	depth      int16
	maximizing bool
	flag       uint8
}

func (t TableEntry) valid() bool {
	// a table flag is 1, 2, or 3.
	return t.flag != 0
}

// usable reports whether the stored score can stand in for a search with
// the window (α, β).
func (t TableEntry) usable(α, β float64) bool {
	switch t.flag {
	case TTExact:
		return true
	case TTLower:
		return t.score >= β
	case TTUpper:
		return t.score <= α
	}
	return false
}

// TranspositionTable caches search results keyed by (position, maximizing,
// remaining depth). When it grows past maxEntries it is cleared entirely
// before the next store.
type TranspositionTable struct {
	table      map[uint64]TableEntry
	maxEntries int

	created    atomic.Uint64
	lookups    atomic.Uint64
	hits       atomic.Uint64
	resets     atomic.Uint64
	collisions atomic.Uint64

	zobrist *zobrist.Zobrist
}

func entrySize() int {
	return int(unsafe.Sizeof(TableEntry{})) + 8 + mapOverheadBytes
}

// Reset empties the table and sets its capacity. The capacity is lowered if
// a full table would not fit in a quarter of system memory.
func (t *TranspositionTable) Reset(maxEntries int) {
	totalMem := memory.TotalMemory()
	if totalMem > 0 {
		memCap := int(maxMemoryFraction * float64(totalMem) / float64(entrySize()))
		if maxEntries > memCap {
			log.Warn().Int("requested", maxEntries).Int("allowed", memCap).
				Msg("transposition-table-too-large")
			maxEntries = memCap
		}
	}
	if maxEntries < 1 {
		maxEntries = 1
	}
	t.maxEntries = maxEntries
	t.table = make(map[uint64]TableEntry)
	if t.zobrist == nil {
		log.Debug().Msg("creating zobrist hash")
		t.zobrist = &zobrist.Zobrist{}
		t.zobrist.Initialize()
	}

	log.Debug().Int("max-entries", maxEntries).
		Int("estimated-max-memory-bytes", maxEntries*entrySize()).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("transposition-table-reset")

	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.resets.Store(0)
	t.collisions.Store(0)
}

// positionKey hashes pos from scratch. Search nodes below the root get
// their keys from childKey instead.
func (t *TranspositionTable) positionKey(pos board.Position) uint64 {
	return t.zobrist.PositionHash(pos)
}

func (t *TranspositionTable) childKey(key uint64, pos, next board.Position) uint64 {
	return t.zobrist.AddMove(key, pos, next)
}

// lookup and store take posKey, the position key of pos.
func (t *TranspositionTable) lookup(posKey uint64, pos board.Position, maximizing bool,
	depth int, α, β float64) (float64, bool) {

	t.lookups.Add(1)
	entry, ok := t.table[t.zobrist.Hash(posKey, maximizing, depth)]
	if !ok || !entry.valid() {
		return 0, false
	}
	if entry.pos != pos || entry.maximizing != maximizing || int(entry.depth) != depth {
		// Another node shares this key.
		t.collisions.Add(1)
		return 0, false
	}
	if !entry.usable(α, β) {
		return 0, false
	}
	t.hits.Add(1)
	return entry.score, true
}

func (t *TranspositionTable) store(posKey uint64, pos board.Position, maximizing bool,
	depth int, score float64, flag uint8) {

	if len(t.table) > t.maxEntries {
		clear(t.table)
		t.resets.Add(1)
	}
	// just overwrite whatever is there for now.
	t.table[t.zobrist.Hash(posKey, maximizing, depth)] = TableEntry{
		pos:        pos,
		score:      score,
		depth:      int16(depth),
		maximizing: maximizing,
		flag:       flag,
	}
	t.created.Add(1)
}

// Len returns the number of stored entries.
func (t *TranspositionTable) Len() int {
	return len(t.table)
}

func (t *TranspositionTable) SetZobrist(z *zobrist.Zobrist) {
	t.zobrist = z
}

// boundFlag classifies a result against the window it was searched with.
func boundFlag(score, αOrig, βOrig float64) uint8 {
	switch {
	case score <= αOrig:
		return TTUpper
	case score >= βOrig:
		return TTLower
	}
	return TTExact
}
