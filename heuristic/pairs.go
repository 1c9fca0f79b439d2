package heuristic

import (
	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/game"
)

// ColumnPairs walks the adjacent pairs of col from the bottom up and counts
// inversions (lower rank below a higher rank) and stackable pairs.
func ColumnPairs(col []card.Card) (inversions, stackable int) {
	for i := 1; i < len(col); i++ {
		lower, upper := col[i-1], col[i]
		if lower.Rank < upper.Rank {
			inversions++
		}
		if game.CanStackOn(lower, upper) {
			stackable++
		}
	}
	return inversions, stackable
}
