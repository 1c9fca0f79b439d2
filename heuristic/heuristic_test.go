package heuristic

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/game"
)

func cards(s string) []card.Card {
	cs, err := card.ParseList(s)
	if err != nil {
		panic(err)
	}
	return cs
}

func TestColumnPairs(t *testing.T) {
	is := is.New(t)
	testcases := []struct {
		col        string
		inversions int
		stackable  int
	}{
		{"", 0, 0},
		{"KS", 0, 0},
		{"KC QD JC", 0, 2},
		{"QC KD", 1, 0},
		{"KC QC", 0, 0},
		{"2H 5S 4D 9C", 2, 1},
	}
	for _, tc := range testcases {
		inv, stk := ColumnPairs(cards(tc.col))
		is.Equal(inv, tc.inversions)
		is.Equal(stk, tc.stackable)
	}
}

func TestGreedyEstimate(t *testing.T) {
	is := is.New(t)
	g := NewGreedy()

	won, err := game.NewFromLayout(nil, nil, []uint8{13, 13, 13, 13})
	is.NoErr(err)
	is.Equal(g.Estimate(won), 0.0)

	oneLeft, err := game.NewFromLayout(nil, cards("KC"), []uint8{12, 13, 13, 13})
	is.NoErr(err)
	is.Equal(Tenths(oneLeft), 15)
	is.Equal(g.Estimate(oneLeft), 1.5)

	mixed, err := game.NewFromLayout([][]card.Card{cards("KC QD JC"), cards("QC KD")},
		nil, []uint8{10, 11, 13, 13})
	is.NoErr(err)
	// 5 cards, two stackable pairs, one inversion.
	is.Equal(Tenths(mixed), 50+5-6)
	is.Equal(g.Estimate(mixed), 4.9)
	is.Equal(g.EstimateTenths(mixed), 49)

	var e Evaluator = g
	_, ok := e.(TenthsEvaluator)
	is.True(ok)
}

func TestEstimateIgnoresSlotOrder(t *testing.T) {
	is := is.New(t)
	a, err := game.NewFromLayout([][]card.Card{cards("KC QD JC"), nil, cards("QC KD")},
		[]card.Card{{}, card.MustFromString("JD")}, []uint8{10, 10, 13, 13})
	is.NoErr(err)
	b, err := game.NewFromLayout([][]card.Card{nil, cards("QC KD"), nil, cards("KC QD JC")},
		[]card.Card{{}, {}, {}, card.MustFromString("JD")}, []uint8{10, 10, 13, 13})
	is.NoErr(err)
	is.Equal(a.HashKey(), b.HashKey())
	is.Equal(NewGreedy().Estimate(a), NewGreedy().Estimate(b))
}
