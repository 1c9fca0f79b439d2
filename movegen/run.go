package movegen

import (
	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/game"
)

// RunLength is the length of the longest ordered run at the top of a
// column: the maximal suffix in which every card stacks on the one below
// it. It is 0 for an empty column.
func RunLength(col []card.Card) int {
	if len(col) == 0 {
		return 0
	}
	n := 1
	for i := len(col) - 1; i > 0; i-- {
		if !game.CanStackOn(col[i-1], col[i]) {
			break
		}
		n++
	}
	return n
}
