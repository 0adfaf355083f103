package groq

import (
	"sort"
	"sync"
	"time"
)

// StatsSnapshot is a point-in-time aggregate of completion call latencies.
type StatsSnapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms int64   `json:"p50_ms"`
	P95Ms int64   `json:"p95_ms"`
	P99Ms int64   `json:"p99_ms"`
}

type latencySample struct {
	at time.Time
	ms int64
}

// Stats keeps completion latencies within a rolling window.
type Stats struct {
	mu      sync.Mutex
	window  time.Duration
	samples []latencySample
}

func NewStats(window time.Duration) *Stats {
	if window <= 0 {
		window = time.Hour
	}
	return &Stats{window: window}
}

// Record adds one latency sample, dropping any that have aged out.
func (s *Stats) Record(ms int64) {
	if ms < 0 {
		ms = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evict(now)
	s.samples = append(s.samples, latencySample{at: now, ms: ms})
}

// Snapshot aggregates the samples still inside the window. Percentiles use
// nearest-rank on the sorted latencies.
func (s *Stats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evict(now)

	n := len(s.samples)
	if n == 0 {
		return StatsSnapshot{}
	}

	sorted := make([]int64, n)
	var sum int64
	for i, sm := range s.samples {
		sorted[i] = sm.ms
		sum += sm.ms
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return StatsSnapshot{
		Count: n,
		MinMs: sorted[0],
		MaxMs: sorted[n-1],
		AvgMs: float64(sum) / float64(n),
		P50Ms: nearestRank(sorted, 50),
		P95Ms: nearestRank(sorted, 95),
		P99Ms: nearestRank(sorted, 99),
	}
}

func (s *Stats) evict(now time.Time) {
	cutoff := now.Add(-s.window)
	keep := s.samples[:0]
	for _, sm := range s.samples {
		if !sm.at.Before(cutoff) {
			keep = append(keep, sm)
		}
	}
	s.samples = keep
}

func nearestRank(sorted []int64, pct int) int64 {
	rank := (pct*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return sorted[rank-1]
}
