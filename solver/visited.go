package solver

import (
	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

const (
	// rough bytes per map entry, bucket overhead included.
	visitedEntrySize = 24
	// successors pushed per explored node, on average, for sizing.
	expectedBranching = 8
	minVisitedSize    = 1024
)

// visitedSet holds the canonical hash of every state ever pushed. Two
// distinct positions with the same 64-bit key are treated as one; the
// odds of that are negligible at the node ceilings used here.
type visitedSet map[uint64]struct{}

// newVisitedSet pre-sizes the set for a search of maxNodes nodes, but never
// beyond fractionOfMemory of the system memory.
func newVisitedSet(maxNodes int, fractionOfMemory float64) visitedSet {
	desired := maxNodes * expectedBranching
	totalMem := memory.TotalMemory()
	if totalMem > 0 && fractionOfMemory > 0 {
		limit := int(fractionOfMemory * float64(totalMem) / visitedEntrySize)
		desired = min(desired, limit)
	}
	desired = max(desired, minVisitedSize)
	log.Debug().Int("desired-elems", desired).
		Uint64("total-system-memory-bytes", totalMem).
		Msg("visited-set-size")
	return make(visitedSet, desired)
}

// add marks key as seen. It returns false if key was already present.
func (v visitedSet) add(key uint64) bool {
	if _, ok := v[key]; ok {
		return false
	}
	v[key] = struct{}{}
	return true
}
