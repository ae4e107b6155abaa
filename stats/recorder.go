package stats

import (
	"sort"
	"sync"
	"time"
)

// Recorder collects the latency and number of results of lookups, per
// kind of lookup. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	latency map[string]*Running
	results map[string]*Running
}

func NewRecorder() *Recorder {
	return &Recorder{
		latency: make(map[string]*Running),
		results: make(map[string]*Running),
	}
}

func (r *Recorder) Record(kind string, elapsed time.Duration, nresults int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.latency[kind]; !ok {
		r.latency[kind] = &Running{}
		r.results[kind] = &Running{}
	}
	r.latency[kind].Push(float64(elapsed) / float64(time.Millisecond))
	r.results[kind].Push(float64(nresults))
}

// Summary describes the lookups of one kind. Latencies are in
// milliseconds; MarginMs is the half-width of the 95% confidence
// interval around MeanMs.
type Summary struct {
	Kind        string  `json:"kind"`
	Count       int     `json:"count"`
	MeanMs      float64 `json:"mean_ms"`
	StdevMs     float64 `json:"stdev_ms"`
	MarginMs    float64 `json:"margin_ms"`
	MaxMs       float64 `json:"max_ms"`
	MeanResults float64 `json:"mean_results"`
}

// Summaries returns one summary per kind of lookup, sorted by kind.
func (r *Recorder) Summaries() []Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	z := ZVal(95)
	out := make([]Summary, 0, len(r.latency))
	for kind, lat := range r.latency {
		out = append(out, Summary{
			Kind:        kind,
			Count:       lat.Count(),
			MeanMs:      lat.Mean(),
			StdevMs:     lat.Stdev(),
			MarginMs:    z * lat.StandardError(),
			MaxMs:       lat.Max(),
			MeanResults: r.results[kind].Mean(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}
