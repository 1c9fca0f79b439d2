package solver

import (
	"container/heap"
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/config"
	"github.com/domino14/freecell/deal"
	"github.com/domino14/freecell/game"
	"github.com/domino14/freecell/heuristic"
	"github.com/domino14/freecell/move"
)

var DefaultConfig = config.DefaultConfig()

func cards(s string) []card.Card {
	cs, err := card.ParseList(s)
	if err != nil {
		panic(err)
	}
	return cs
}

func layout(t *testing.T, cols []string, cells string, foundations []uint8) *game.State {
	columns := make([][]card.Card, len(cols))
	for i, c := range cols {
		columns[i] = cards(c)
	}
	s, err := game.NewFromLayout(columns, cards(cells), foundations)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// sortedLayout has every foundation at 4 and the other 36 cards dealt
// highest rank first, so each column top is its lowest card.
func sortedLayout(t *testing.T) *game.State {
	return layout(t, []string{
		"KC KD KH KS QC", "QD QH QS JC JD", "JH JS 10C 10D 10H", "10S 9C 9D 9H 9S",
		"8C 8D 8H 8S", "7C 7D 7H 7S", "6C 6D 6H 6S", "5C 5D 5H 5S",
	}, "", []uint8{4, 4, 4, 4})
}

func nearlySolvedLayout(t *testing.T) *game.State {
	return layout(t, []string{
		"10H 9H KD KC KH KS", "JS QD", "QH JC", "10S 9S",
		"QS 10D", "10C JD", "QC 9D", "JH 9C",
	}, "", []uint8{8, 8, 8, 8})
}

func TestSolveAlreadyWon(t *testing.T) {
	is := is.New(t)
	won := layout(t, nil, "", []uint8{13, 13, 13, 13})
	s := NewSolver(DefaultConfig)
	sol, err := s.Solve(won)
	is.NoErr(err)
	is.Equal(len(sol.Moves), 0)
	is.Equal(sol.NodesExplored, 1)
	is.Equal(sol.StatesSeen, 1)
	is.True(won.IsWon())
}

func TestSolveSingleFoundationMove(t *testing.T) {
	is := is.New(t)
	initial := layout(t, nil, "KC", []uint8{12, 13, 13, 13})
	s := NewSolver(DefaultConfig)
	sol, err := s.Solve(initial)
	is.NoErr(err)
	is.Equal(sol.Moves, []move.Move{move.NewFreeCellToFoundation(0)})
}

func TestSolvePartiallySolved(t *testing.T) {
	is := is.New(t)
	initial := sortedLayout(t)
	s := NewSolver(DefaultConfig)
	sol, err := s.Solve(initial)
	is.NoErr(err)
	is.True(len(sol.Moves) >= 36)
	is.True(sol.NodesExplored <= s.MaxNodes())
	is.True(sol.StatesSeen >= sol.NodesExplored)

	final, err := game.Replay(initial, sol.Moves)
	is.NoErr(err)
	is.True(final.IsWon())
}

func TestSolveNearlySolved(t *testing.T) {
	is := is.New(t)
	initial := nearlySolvedLayout(t)
	s := NewSolver(DefaultConfig)
	sol, err := s.Solve(initial)
	is.NoErr(err)
	final, err := game.Replay(initial, sol.Moves)
	is.NoErr(err)
	is.True(final.IsWon())
}

func TestSolveDealtFromFours(t *testing.T) {
	is := is.New(t)
	initial, err := deal.PartiallySolved(4, 8)
	is.NoErr(err)
	s := NewSolver(DefaultConfig)
	s.SetMaxNodes(100000)
	sol, err := s.Solve(initial)
	is.NoErr(err)
	is.True(sol.NodesExplored <= 100000)
	final, err := game.Replay(initial, sol.Moves)
	is.NoErr(err)
	is.True(final.IsWon())
}

func TestSolveIsDeterministic(t *testing.T) {
	is := is.New(t)
	s := NewSolver(DefaultConfig)
	a, err := s.Solve(nearlySolvedLayout(t))
	is.NoErr(err)
	b, err := s.Solve(nearlySolvedLayout(t))
	is.NoErr(err)
	is.Equal(a.Moves, b.Moves)
	is.Equal(a.NodesExplored, b.NodesExplored)
}

func TestSolveInvalidDeal(t *testing.T) {
	is := is.New(t)
	s := NewSolver(DefaultConfig)

	deck := card.NewDeck()
	sol, err := s.SolveDeal(append(deck, card.New(card.Ace, card.Spades)))
	is.True(errors.Is(err, game.ErrInvalidDeal))
	is.True(sol == nil)

	dup := append([]card.Card(nil), deck...)
	dup[51] = dup[0]
	sol, err = s.SolveDeal(dup)
	is.True(errors.Is(err, game.ErrInvalidDeal))
	is.True(sol == nil)
}

func permutedDeck() []card.Card {
	deck := card.NewDeck()
	cs := make([]card.Card, card.DeckSize)
	for i := range cs {
		cs[i] = deck[(i*7)%card.DeckSize]
	}
	return cs
}

func TestBudgetExceeded(t *testing.T) {
	is := is.New(t)
	s := NewSolver(DefaultConfig)
	s.SetMaxNodes(10)
	sol, err := s.SolveDeal(permutedDeck())
	is.True(errors.Is(err, ErrBudgetExceeded))
	is.Equal(sol.NodesExplored, 10)
	is.Equal(len(sol.Moves), 0)
	is.True(sol.MaxFrontier > 0)
}

func TestSetMaxNodes(t *testing.T) {
	is := is.New(t)
	s := NewSolver(DefaultConfig)
	is.Equal(s.MaxNodes(), config.DefaultMaxNodes)
	s.SetMaxNodes(5)
	is.Equal(s.MaxNodes(), 5)
	s.SetMaxNodes(0)
	is.Equal(s.MaxNodes(), config.DefaultMaxNodes)
	s.SetMaxNodes(-3)
	is.Equal(s.MaxNodes(), config.DefaultMaxNodes)
}

// funcGenerator offers whatever gen returns for a position.
type funcGenerator struct {
	gen   func(*game.State) []move.Move
	plays []move.Move
}

func (f *funcGenerator) GenAll(s *game.State) { f.plays = f.gen(s) }
func (f *funcGenerator) Plays() []move.Move   { return f.plays }

func fixedGenerator(plays ...move.Move) *funcGenerator {
	return &funcGenerator{gen: func(*game.State) []move.Move { return plays }}
}

// constEvaluator reports the same float estimate for every position.
type constEvaluator float64

func (c constEvaluator) Estimate(*game.State) float64 { return float64(c) }

func TestFrontierOrder(t *testing.T) {
	is := is.New(t)
	fr := &frontier{}
	for i, f := range []int{35, 20, 35, 20, 10} {
		heap.Push(fr, frontierEntry{f: f, seq: uint64(i)})
	}
	var got []uint64
	for fr.Len() > 0 {
		got = append(got, heap.Pop(fr).(frontierEntry).seq)
	}
	is.Equal(got, []uint64{4, 1, 3, 0, 2})
}

func TestScoreInTenths(t *testing.T) {
	is := is.New(t)
	st := layout(t, []string{"KC QD JC", "QC KD"}, "", []uint8{10, 11, 13, 13})

	s := NewSolver(DefaultConfig)
	is.Equal(s.score(3, st), 30+heuristic.Tenths(st))

	// 0.1+0.2 and 0.3 differ as floats but land on the same score.
	a := &Solver{}
	a.Init(fixedGenerator(), constEvaluator(0.1+0.2), DefaultConfig)
	b := &Solver{}
	b.Init(fixedGenerator(), constEvaluator(0.3), DefaultConfig)
	is.Equal(a.score(1, st), 13)
	is.Equal(a.score(1, st), b.score(1, st))
}

func TestNoSolution(t *testing.T) {
	is := is.New(t)
	s := &Solver{}
	s.Init(fixedGenerator(), heuristic.NewGreedy(), DefaultConfig)
	sol, err := s.Solve(layout(t, nil, "KC", []uint8{12, 13, 13, 13}))
	is.True(errors.Is(err, ErrNoSolution))
	is.True(!errors.Is(err, ErrBudgetExceeded))
	is.Equal(sol.NodesExplored, 1)
	is.Equal(len(sol.Moves), 0)
}

func TestDuplicateStatesNotRequeued(t *testing.T) {
	is := is.New(t)
	// Dropping the king into any empty column gives the same canonical
	// position, so only the first of these is queued.
	gen := &funcGenerator{gen: func(st *game.State) []move.Move {
		if st.FreeCell(0).IsZero() {
			return nil
		}
		return []move.Move{
			move.NewFreeCellToCol(0, 0),
			move.NewFreeCellToCol(0, 1),
			move.NewFreeCellToCol(0, 2),
		}
	}}
	s := &Solver{}
	s.Init(gen, heuristic.NewGreedy(), DefaultConfig)
	sol, err := s.Solve(layout(t, nil, "KC", []uint8{12, 13, 13, 13}))
	is.True(errors.Is(err, ErrNoSolution))
	is.Equal(sol.StatesSeen, 2)
	is.Equal(sol.NodesExplored, 2)
	is.Equal(sol.MaxFrontier, 1)
}

func TestIllegalGeneratedMovePanics(t *testing.T) {
	is := is.New(t)
	s := &Solver{}
	s.Init(fixedGenerator(move.NewColToFoundation(0)), heuristic.NewGreedy(), DefaultConfig)
	defer func() {
		r := recover()
		err, ok := r.(error)
		is.True(ok)
		is.True(errors.Is(err, game.ErrInvariantViolation))
	}()
	s.Solve(layout(t, nil, "KC", []uint8{12, 13, 13, 13}))
	t.Fatal("expected a panic")
}

func TestVerifyInvariants(t *testing.T) {
	is := is.New(t)
	s := NewSolver(DefaultConfig)
	s.SetVerifyInvariants(true)
	initial := sortedLayout(t)
	sol, err := s.Solve(initial)
	is.NoErr(err)
	final, err := game.Replay(initial, sol.Moves)
	is.NoErr(err)
	is.True(final.IsWon())
}

func TestSolutionString(t *testing.T) {
	is := is.New(t)
	sol := &Solution{
		Moves:         []move.Move{move.NewColToFreeCell(0, 1), move.NewFreeCellToFoundation(1)},
		NodesExplored: 3,
		StatesSeen:    7,
	}
	str := sol.String()
	is.True(strings.HasPrefix(str, "Solution; 2 moves; 3 nodes; 7 states;"))
	is.True(strings.Contains(str, "1: col_to_free(0,1)"))
	is.True(strings.Contains(str, "2: free_to_found(1)"))
}
