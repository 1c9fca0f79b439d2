// Package heuristic scores FreeCell positions for the best-first search.
package heuristic

import (
	"github.com/domino14/freecell/game"
)

// Evaluator estimates how far a state is from a win. Lower is better.
type Evaluator interface {
	Estimate(s *game.State) float64
}

// TenthsEvaluator is an Evaluator that can report its estimate as an exact
// integer number of tenths, so search scores never carry float error.
type TenthsEvaluator interface {
	Evaluator
	EstimateTenths(s *game.State) int
}

// Weights of the greedy formula, in tenths of a move.
const (
	cardWeight      = 10
	freeCellWeight  = 5
	inversionWeight = 5
	stackableCredit = 3
)

// Greedy is the standard evaluator. It is not an admissible lower bound:
// it ranks states for a feasibility-seeking search and may overestimate.
//
//	cards left + 0.5*occupied cells + 0.5*inversions - 0.3*stackable pairs
//
// An inversion is a pair of adjacent column cards where the lower card has
// the smaller rank; a stackable pair already satisfies game.CanStackOn.
type Greedy struct{}

func NewGreedy() *Greedy {
	return &Greedy{}
}

func (g *Greedy) Estimate(s *game.State) float64 {
	return float64(Tenths(s)) / 10
}

func (g *Greedy) EstimateTenths(s *game.State) int {
	return Tenths(s)
}

// Tenths returns the greedy score multiplied by ten. All weights are exact
// tenths, so the integer form never rounds and equal positions compare
// equal.
func Tenths(s *game.State) int {
	occupied := game.NumFreeCells - s.CountFreeCells()
	score := cardWeight*s.CardsRemaining() + freeCellWeight*occupied
	for i := 0; i < game.NumColumns; i++ {
		inv, stk := ColumnPairs(s.ColumnView(i))
		score += inversionWeight*inv - stackableCredit*stk
	}
	return score
}
