// Package automatic solves batches of seeded random deals, collects the
// outcomes and optionally stores them in a sqlite database.
package automatic

import (
	"context"
	"errors"
	"expvar"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/freecell/config"
	"github.com/domino14/freecell/deal"
	"github.com/domino14/freecell/game"
	"github.com/domino14/freecell/move"
	"github.com/domino14/freecell/solver"
)

var (
	SolveCounter *expvar.Int
	IsSolving    *expvar.Int
)

// batchMu allows one batch at a time per process.
var batchMu sync.Mutex

var ErrBatchRunning = errors.New("a batch is already running, please wait till complete")

func init() {
	SolveCounter = expvar.NewInt("solveCounter")
	IsSolving = expvar.NewInt("isSolving")
}

const (
	OutcomeSolved         = "solved"
	OutcomeNoSolution     = "no-solution"
	OutcomeBudgetExceeded = "budget-exceeded"
)

// Result is the outcome of one deal of a batch.
type Result struct {
	Seed          uint64
	Outcome       string
	Moves         []move.Move
	NodesExplored int
	StatesSeen    int
	Elapsed       time.Duration
}

func (r Result) Solved() bool {
	return r.Outcome == OutcomeSolved
}

// BatchRunner solves one deal per seed. Every deal gets its own Solver;
// only the result slice is shared, and each job writes its own index.
type BatchRunner struct {
	cfg     *config.Config
	threads int
	// Foundations, when above zero, deals partially solved positions with
	// every foundation at that rank instead of full deals.
	Foundations int
}

func NewBatchRunner(cfg *config.Config) *BatchRunner {
	threads := cfg.GetInt(config.ConfigBatchThreads)
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	return &BatchRunner{cfg: cfg, threads: threads}
}

func (b *BatchRunner) Threads() int {
	return b.threads
}

func (b *BatchRunner) position(seed uint64) (*game.State, error) {
	if b.Foundations > 0 {
		return deal.PartiallySolved(b.Foundations, seed)
	}
	return deal.RandomState(seed), nil
}

// Run solves the deals for seeds firstSeed to firstSeed+n-1.
func (b *BatchRunner) Run(ctx context.Context, firstSeed uint64, n int) ([]Result, error) {
	return b.RunSeeds(ctx, SeedRange(firstSeed, n))
}

// RunSeeds solves one deal per seed. Cancelling ctx stops jobs that have
// not started yet; the results gathered so far are returned with the
// context error.
func (b *BatchRunner) RunSeeds(ctx context.Context, seeds []uint64) ([]Result, error) {
	if !batchMu.TryLock() {
		return nil, ErrBatchRunning
	}
	defer batchMu.Unlock()
	IsSolving.Add(1)
	defer IsSolving.Add(-1)
	SolveCounter.Set(0)

	n := len(seeds)
	log.Debug().Int("deals", n).Int("threads", b.threads).Msg("starting-batch")

	results := make([]Result, n)
	done := make([]bool, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.threads)

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := b.solveOne(seeds[i])
			if err != nil {
				return err
			}
			results[i] = res
			done[i] = true
			SolveCounter.Add(1)
			if c := SolveCounter.Value(); c%100 == 0 {
				log.Info().Int64("solved", c).Msg("batch-progress")
			}
			return nil
		})
	}
	err := g.Wait()

	finished := make([]Result, 0, n)
	for i, r := range results {
		if done[i] {
			finished = append(finished, r)
		}
	}
	log.Debug().Int("finished", len(finished)).Msg("batch-done")
	if err == nil {
		err = ctx.Err()
	}
	return finished, err
}

// newSolver returns a solver whose share of the visited-set memory cap is
// divided among the concurrent searches.
func (b *BatchRunner) newSolver() *solver.Solver {
	s := solver.NewSolver(b.cfg)
	s.SetMemoryFraction(b.cfg.GetFloat64(config.ConfigVisitedMemoryFraction) / float64(b.threads))
	return s
}

func (b *BatchRunner) solveOne(seed uint64) (Result, error) {
	initial, err := b.position(seed)
	if err != nil {
		return Result{}, err
	}
	sol, err := b.newSolver().Solve(initial)
	res := Result{Seed: seed}
	if sol != nil {
		res.Moves = sol.Moves
		res.NodesExplored = sol.NodesExplored
		res.StatesSeen = sol.StatesSeen
		res.Elapsed = sol.Elapsed
	}
	switch {
	case err == nil:
		res.Outcome = OutcomeSolved
	case errors.Is(err, solver.ErrNoSolution):
		res.Outcome = OutcomeNoSolution
	case errors.Is(err, solver.ErrBudgetExceeded):
		res.Outcome = OutcomeBudgetExceeded
	default:
		return Result{}, err
	}
	return res, nil
}
