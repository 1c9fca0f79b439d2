package game

import (
	"bytes"
	"slices"

	"github.com/cespare/xxhash"
)

// HashKey is the canonical hash of the position. Columns are treated as an
// unordered set of sequences and free cells as an unordered set of cards, so
// states that only differ by which column or which free cell holds what
// hash to the same key.
func (s *State) HashKey() uint64 {
	var cols [NumColumns][]byte
	total := 0
	for i, col := range s.columns {
		enc := make([]byte, len(col))
		for j, c := range col {
			enc[j] = c.Encode()
		}
		cols[i] = enc
		total += len(col)
	}
	slices.SortFunc(cols[:], bytes.Compare)

	var cells [NumFreeCells]byte
	for i, c := range s.freecells {
		cells[i] = c.Encode()
	}
	slices.Sort(cells[:])

	buf := make([]byte, 0, total+NumColumns+NumFreeCells+len(s.foundations))
	for _, col := range cols {
		// length prefix keeps column boundaries unambiguous.
		buf = append(buf, byte(len(col)))
		buf = append(buf, col...)
	}
	buf = append(buf, cells[:]...)
	buf = append(buf, s.foundations[:]...)
	return xxhash.Sum64(buf)
}
