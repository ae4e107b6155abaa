package stats

import "math"

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Running keeps the mean and variance of a stream of values without
// storing them (Welford's algorithm). The zero value is ready to use. It
// is not safe for concurrent use; see Recorder for that.
type Running struct {
	n    int
	mean float64
	// sum of squared differences from the mean
	m2 float64
	max float64
}

func (r *Running) Push(val float64) {
	r.n++
	delta := val - r.mean
	r.mean += delta / float64(r.n)
	r.m2 += delta * (val - r.mean)
	if r.n == 1 || val > r.max {
		r.max = val
	}
}

func (r *Running) Count() int {
	return r.n
}

func (r *Running) Mean() float64 {
	return r.mean
}

func (r *Running) Max() float64 {
	return r.max
}

// Variance is the sample variance; zero with fewer than two values.
func (r *Running) Variance() float64 {
	if r.n < 2 {
		return 0
	}
	return r.m2 / float64(r.n-1)
}

func (r *Running) Stdev() float64 {
	return math.Sqrt(r.Variance())
}

func (r *Running) StandardError() float64 {
	if r.n == 0 {
		return 0
	}
	return math.Sqrt(r.Variance() / float64(r.n))
}
