package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestRunning(t *testing.T) {
	is := is.New(t)
	type tc struct {
		values []int
		mean   float64
		stdev  float64
		max    float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638, 23},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891, 124},
		{[]int{1}, 1, 0, 1},
		{[]int{}, 0, 0, 0},
		{[]int{1, 1}, 1, 0, 1},
		{[]int{-3, -5}, -4, 1.4142135623731, -3},
	}
	for _, c := range cases {
		r := &Running{}
		for _, v := range c.values {
			r.Push(float64(v))
		}
		is.Equal(r.Count(), len(c.values))
		is.True(FuzzyEqual(r.Mean(), c.mean))
		is.True(FuzzyEqual(r.Stdev(), c.stdev))
		is.True(FuzzyEqual(r.Max(), c.max))
	}
}

func TestZVal(t *testing.T) {
	assert.InDelta(t, 1.959964, ZVal(95), 1e-5)
	assert.InDelta(t, 2.575829, ZVal(99), 1e-5)
	assert.InDelta(t, 0, ZVal(0), 1e-9)
}

func TestRecorder(t *testing.T) {
	is := is.New(t)
	r := NewRecorder()
	is.Equal(len(r.Summaries()), 0)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Record("words", 2*time.Millisecond, 4)
			r.Record("anagram", time.Millisecond, 1)
		}()
	}
	wg.Wait()
	r.Record("words", 4*time.Millisecond, 14)

	sums := r.Summaries()
	is.Equal(len(sums), 2)
	is.Equal(sums[0].Kind, "anagram")
	is.Equal(sums[0].Count, 10)
	is.True(FuzzyEqual(sums[0].MeanMs, 1))
	is.True(FuzzyEqual(sums[0].MarginMs, 0))

	is.Equal(sums[1].Kind, "words")
	is.Equal(sums[1].Count, 11)
	is.True(FuzzyEqual(sums[1].MeanResults, 54.0/11))
	is.True(FuzzyEqual(sums[1].MaxMs, 4))
	is.True(sums[1].MarginMs > 0)
}
