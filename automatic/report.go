package automatic

import (
	"fmt"
	"io"
	"time"

	"github.com/samber/lo"

	"github.com/domino14/freecell/stats"
)

// Report summarizes a batch.
type Report struct {
	Total          int
	Solved         int
	NoSolution     int
	BudgetExceeded int
	// SolveRateLow and SolveRateHigh bound the solve rate at 95% confidence.
	SolveRate     float64
	SolveRateLow  float64
	SolveRateHigh float64
	MoveCounts    stats.Summary
	NodesExplored stats.Summary
	MeanElapsed   time.Duration
	ElapsedStdErr time.Duration

	moves []float64
}

func NewReport(results []Result) *Report {
	r := &Report{Total: len(results)}
	r.Solved = lo.CountBy(results, func(res Result) bool { return res.Outcome == OutcomeSolved })
	r.NoSolution = lo.CountBy(results, func(res Result) bool { return res.Outcome == OutcomeNoSolution })
	r.BudgetExceeded = lo.CountBy(results, func(res Result) bool { return res.Outcome == OutcomeBudgetExceeded })
	if r.Total > 0 {
		r.SolveRate = float64(r.Solved) / float64(r.Total)
		r.SolveRateLow, r.SolveRateHigh = stats.ProportionInterval(r.Solved, r.Total, 95)
	}
	solved := lo.Filter(results, func(res Result, _ int) bool { return res.Solved() })
	r.moves = lo.Map(solved, func(res Result, _ int) float64 { return float64(len(res.Moves)) })
	r.MoveCounts = stats.Summarize(r.moves)

	elapsed := &stats.Running{}
	for _, res := range results {
		elapsed.PushDuration(res.Elapsed)
	}
	r.MeanElapsed = time.Duration(elapsed.Mean())
	r.ElapsedStdErr = time.Duration(elapsed.StandardError())
	r.NodesExplored = stats.Summarize(lo.Map(results, func(res Result, _ int) float64 {
		return float64(res.NodesExplored)
	}))
	return r
}

// Write prints the report and a histogram of solution lengths.
func (r *Report) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Deals: %d\nSolved: %d (%.1f%%, 95%% CI %.1f%% - %.1f%%)\n"+
		"No solution: %d\nBudget exceeded: %d\nSolution length: %v\nNodes explored: %v\n"+
		"Time per deal: %v ± %v\n\n",
		r.Total, r.Solved, 100*r.SolveRate, 100*r.SolveRateLow, 100*r.SolveRateHigh,
		r.NoSolution, r.BudgetExceeded, r.MoveCounts, r.NodesExplored,
		r.MeanElapsed, r.ElapsedStdErr)
	if err != nil {
		return err
	}
	return stats.Histogram(w, r.moves, 10, 40)
}
