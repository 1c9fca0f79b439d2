// Package solver finds a winning line for a FreeCell position with a
// best-first search ordered by moves played plus a heuristic estimate.
//
// The search is not A*: the heuristic may overestimate, and a state is
// closed the first time its canonical hash is seen. Solutions are usually
// found quickly but are not the shortest ones.
package solver

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/config"
	"github.com/domino14/freecell/game"
	"github.com/domino14/freecell/heuristic"
	"github.com/domino14/freecell/move"
	"github.com/domino14/freecell/movegen"
)

var (
	ErrNoSolution = errors.New("no solution found")
	// ErrBudgetExceeded means the node ceiling was hit. The position may
	// still be solvable with a larger budget.
	ErrBudgetExceeded = errors.New("node budget exceeded")
)

// Solution is the result of one search. It is returned together with
// ErrNoSolution and ErrBudgetExceeded as well, with no moves, so callers
// can report the effort spent.
type Solution struct {
	Moves         []move.Move
	NodesExplored int
	StatesSeen    int
	MaxFrontier   int
	Elapsed       time.Duration
}

func (s *Solution) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Solution; %d moves; %d nodes; %d states; %v\n",
		len(s.Moves), s.NodesExplored, s.StatesSeen, s.Elapsed)
	for i, m := range s.Moves {
		fmt.Fprintf(&sb, "%d: %s (%s)\n", i+1, m.String(), m.ShortDescription())
	}
	return sb.String()
}

type Solver struct {
	movegen   movegen.MoveGenerator
	evaluator heuristic.Evaluator

	maxNodes         int
	logEvery         int
	verifyInvariants bool
	memoryFraction   float64
}

// NewSolver returns a solver with the standard move generator and greedy
// evaluator, configured from cfg.
func NewSolver(cfg *config.Config) *Solver {
	s := &Solver{}
	s.Init(movegen.NewGenerator(), heuristic.NewGreedy(), cfg)
	return s
}

// Init sets the collaborators and settings of the solver.
func (s *Solver) Init(m movegen.MoveGenerator, e heuristic.Evaluator, cfg *config.Config) {
	s.movegen = m
	s.evaluator = e
	s.SetMaxNodes(cfg.GetInt(config.ConfigMaxNodes))
	s.logEvery = cfg.GetInt(config.ConfigLogEvery)
	s.verifyInvariants = cfg.GetBool(config.ConfigVerifyInvariants)
	s.memoryFraction = cfg.GetFloat64(config.ConfigVisitedMemoryFraction)
}

// SetMaxNodes sets the node ceiling. A non-positive value restores the
// default.
func (s *Solver) SetMaxNodes(n int) {
	if n <= 0 {
		n = config.DefaultMaxNodes
	}
	s.maxNodes = n
}

func (s *Solver) MaxNodes() int {
	return s.maxNodes
}

// SetMemoryFraction sets the share of system memory the visited set may
// be pre-sized to.
func (s *Solver) SetMemoryFraction(f float64) {
	s.memoryFraction = f
}

func (s *Solver) MemoryFraction() float64 {
	return s.memoryFraction
}

func (s *Solver) SetVerifyInvariants(v bool) {
	s.verifyInvariants = v
}

// SolveDeal deals cards and solves the resulting position.
func (s *Solver) SolveDeal(cards []card.Card) (*Solution, error) {
	initial, err := game.NewFromDeal(cards)
	if err != nil {
		return nil, err
	}
	return s.Solve(initial)
}

// Solve searches for a sequence of moves that takes initial to a won
// position. An invalid initial position is reported before any search
// work. A move from the generator that is illegal in its own position
// panics with game.ErrInvariantViolation.
func (s *Solver) Solve(initial *game.State) (*Solution, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	sol := &Solution{}
	visited := newVisitedSet(s.maxNodes, s.memoryFraction)
	visited.add(initial.HashKey())

	fr := &frontier{}
	var seq uint64
	heap.Push(fr, frontierEntry{
		f:    s.score(0, initial),
		seq:  seq,
		node: &searchNode{state: initial},
	})
	sol.MaxFrontier = 1

	finish := func() {
		sol.StatesSeen = len(visited)
		sol.Elapsed = time.Since(start)
	}

	for fr.Len() > 0 {
		if sol.NodesExplored >= s.maxNodes {
			finish()
			log.Debug().Int("explored", sol.NodesExplored).Int("frontier", fr.Len()).
				Msg("search-budget-exceeded")
			return sol, ErrBudgetExceeded
		}
		entry := heap.Pop(fr).(frontierEntry)
		cur := entry.node
		sol.NodesExplored++

		if s.logEvery > 0 && sol.NodesExplored%s.logEvery == 0 {
			log.Debug().Int("explored", sol.NodesExplored).
				Int("frontier", fr.Len()).
				Int("path", cur.g).
				Float64("h", float64(entry.f-10*cur.g)/10).
				Msg("search-progress")
		}

		if cur.state.IsWon() {
			sol.Moves = cur.path()
			finish()
			log.Debug().Int("moves", len(sol.Moves)).Int("explored", sol.NodesExplored).
				Dur("elapsed", sol.Elapsed).Msg("solution-found")
			return sol, nil
		}

		s.movegen.GenAll(cur.state)
		for _, m := range s.movegen.Plays() {
			child := cur.state.PlayMove(m)
			if s.verifyInvariants {
				s.verify(cur.state, child, m)
			}
			if !visited.add(child.HashKey()) {
				continue
			}
			seq++
			g := cur.g + 1
			heap.Push(fr, frontierEntry{
				f:    s.score(g, child),
				seq:  seq,
				node: &searchNode{state: child, parent: cur, move: m, g: g},
			})
		}
		sol.MaxFrontier = max(sol.MaxFrontier, fr.Len())
	}
	finish()
	log.Debug().Int("explored", sol.NodesExplored).Msg("search-exhausted")
	return sol, ErrNoSolution
}

// verify panics if child breaks card conservation, or if the foundations
// did not move by exactly the one card a foundation move plays.
func (s *Solver) verify(parent, child *game.State, m move.Move) {
	if err := child.Validate(); err != nil {
		panic(fmt.Errorf("%w: after %v: %v", game.ErrInvariantViolation, m, err))
	}
	steps := 0
	for suit := card.Suit(0); suit < card.NumSuits; suit++ {
		diff := int(child.Foundation(suit)) - int(parent.Foundation(suit))
		if diff < 0 || diff > 1 {
			panic(fmt.Errorf("%w: after %v: foundation %v went from %d to %d",
				game.ErrInvariantViolation, m, suit, parent.Foundation(suit),
				child.Foundation(suit)))
		}
		steps += diff
	}
	want := 0
	if m.ToFoundation() {
		want = 1
	}
	if steps != want {
		panic(fmt.Errorf("%w: %v moved %d cards to the foundations",
			game.ErrInvariantViolation, m, steps))
	}
}

// score is f = g + h in tenths of a move. Evaluators that report exact
// tenths are used as is, others are rounded.
func (s *Solver) score(g int, st *game.State) int {
	if te, ok := s.evaluator.(heuristic.TenthsEvaluator); ok {
		return 10*g + te.EstimateTenths(st)
	}
	return 10*g + int(math.Round(s.evaluator.Estimate(st)*10))
}
