// Package stats summarizes batches of solver runs.
package stats

import (
	"math"
	"time"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Running accumulates count, mean, variance and range in one pass
// (Welford's method), so a batch never has to keep every sample.
type Running struct {
	n        int
	mean     float64
	m2       float64
	min, max float64
}

func (r *Running) Push(val float64) {
	r.n++
	if r.n == 1 {
		r.min, r.max = val, val
	} else {
		r.min = min(r.min, val)
		r.max = max(r.max, val)
	}
	delta := val - r.mean
	r.mean += delta / float64(r.n)
	r.m2 += delta * (val - r.mean)
}

func (r *Running) PushDuration(d time.Duration) {
	r.Push(float64(d))
}

func (r *Running) Mean() float64 {
	return r.mean
}

// Variance is the sample variance; zero for fewer than two values.
func (r *Running) Variance() float64 {
	if r.n < 2 {
		return 0
	}
	return r.m2 / float64(r.n-1)
}

func (r *Running) Stdev() float64 {
	return math.Sqrt(r.Variance())
}

// StandardError of the mean. Zero when nothing was pushed.
func (r *Running) StandardError() float64 {
	if r.n == 0 {
		return 0
	}
	return math.Sqrt(r.Variance() / float64(r.n))
}

func (r *Running) Min() float64 { return r.min }
func (r *Running) Max() float64 { return r.max }
func (r *Running) Count() int   { return r.n }
