package game

import (
	"fmt"
	"strings"

	"github.com/domino14/freecell/card"
)

// ToDisplayText turns the state into a displayable string: free cells and
// foundations on the first line, then the columns row by row.
func (s *State) ToDisplayText() string {
	var sb strings.Builder
	for _, c := range s.freecells {
		if c.IsZero() {
			sb.WriteString(" -- ")
		} else {
			fmt.Fprintf(&sb, "%4s", c.Pretty())
		}
	}
	sb.WriteString("   ")
	for suit := card.Clubs; suit < card.NumSuits; suit++ {
		if s.foundations[suit] == 0 {
			fmt.Fprintf(&sb, "%4s", "["+suit.String()+"]")
			continue
		}
		fmt.Fprintf(&sb, "%4s", card.New(s.foundations[suit], suit).Pretty())
	}
	sb.WriteString("\n\n")

	maxRows := 0
	for _, col := range s.columns {
		maxRows = max(maxRows, len(col))
	}
	for row := 0; row < maxRows; row++ {
		var line strings.Builder
		for _, col := range s.columns {
			if row < len(col) {
				fmt.Fprintf(&line, "%4s", col[row].Pretty())
			} else {
				line.WriteString("    ")
			}
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (s *State) String() string {
	return s.ToDisplayText()
}
