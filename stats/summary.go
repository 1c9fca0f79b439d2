package stats

import (
	"fmt"
	"io"
	"slices"

	"github.com/aybabtme/uniplot/histogram"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a sample, for example the solution lengths of a batch.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Median float64
	P90    float64
	Max    float64
}

// Summarize computes a Summary. data is not modified.
func Summarize(data []float64) Summary {
	if len(data) == 0 {
		return Summary{}
	}
	sorted := slices.Clone(data)
	slices.Sort(sorted)
	sm := Summary{
		Count:  len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		sm.Mean, sm.StdDev = stat.MeanStdDev(sorted, nil)
	} else {
		sm.Mean = sorted[0]
	}
	return sm
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d mean=%.2f sd=%.2f min=%.0f median=%.0f p90=%.0f max=%.0f",
		s.Count, s.Mean, s.StdDev, s.Min, s.Median, s.P90, s.Max)
}

// Histogram prints a text histogram of data with the given number of bins,
// bars scaled to at most width characters.
func Histogram(w io.Writer, data []float64, bins, width int) error {
	if len(data) == 0 {
		_, err := fmt.Fprintln(w, "(no data)")
		return err
	}
	h := histogram.Hist(bins, data)
	return histogram.Fprint(w, h, histogram.Linear(width))
}
