package metrics

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp time.Time
	micros    int64
	headings  int
}

// LatencySnapshot aggregates the transform samples still inside the window.
type LatencySnapshot struct {
	Count       int     `json:"count"`
	MinUs       int64   `json:"min_us"`
	MaxUs       int64   `json:"max_us"`
	AvgUs       float64 `json:"avg_us"`
	P50Us       float64 `json:"p50_us"`
	P95Us       float64 `json:"p95_us"`
	P99Us       float64 `json:"p99_us"`
	AvgHeadings float64 `json:"avg_headings"`
}

// Latency tracks recent transform durations within a rolling window.
type Latency struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewLatency(maxAge time.Duration) *Latency {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Latency{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

func (l *Latency) Record(d time.Duration, headings int) {
	micros := d.Microseconds()
	if micros < 0 {
		micros = 0
	}
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.pruneLocked(now)
	l.samples = append(l.samples, sample{
		timestamp: now,
		micros:    micros,
		headings:  headings,
	})
}

func (l *Latency) Snapshot() LatencySnapshot {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.pruneLocked(now)
	if len(l.samples) == 0 {
		return LatencySnapshot{}
	}

	values := make([]int64, 0, len(l.samples))
	var sum int64
	var headings int
	for _, s := range l.samples {
		values = append(values, s.micros)
		sum += s.micros
		headings += s.headings
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	n := float64(len(values))
	return LatencySnapshot{
		Count:       len(values),
		MinUs:       values[0],
		MaxUs:       values[len(values)-1],
		AvgUs:       float64(sum) / n,
		P50Us:       percentile(values, 50),
		P95Us:       percentile(values, 95),
		P99Us:       percentile(values, 99),
		AvgHeadings: float64(headings) / n,
	}
}

func (l *Latency) pruneLocked(now time.Time) {
	cutoff := now.Add(-l.maxAge)
	writeIdx := 0
	for _, s := range l.samples {
		if !s.timestamp.Before(cutoff) {
			l.samples[writeIdx] = s
			writeIdx++
		}
	}
	l.samples = l.samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
