package solver

import (
	"github.com/domino14/freecell/game"
	"github.com/domino14/freecell/move"
)

// searchNode is one generated state. Nodes link back to their parent so a
// path is only materialized for the winning node.
type searchNode struct {
	state  *game.State
	parent *searchNode
	move   move.Move
	g      int
}

func (n *searchNode) path() []move.Move {
	moves := make([]move.Move, n.g)
	for cur := n; cur.parent != nil; cur = cur.parent {
		moves[cur.g-1] = cur.move
	}
	return moves
}

type frontierEntry struct {
	f    int // tenths
	seq  uint64
	node *searchNode
}

// frontier is a min-heap on (f, seq). seq is the insertion counter, so
// equal scores pop in insertion order and states are never compared.
type frontier []frontierEntry

func (h frontier) Len() int { return len(h) }
func (h frontier) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h frontier) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *frontier) Push(x any)   { *h = append(*h, x.(frontierEntry)) }
func (h *frontier) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = frontierEntry{}
	*h = old[:n-1]
	return x
}
