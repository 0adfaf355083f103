package groq

import (
	"testing"
	"time"
)

func TestStatsSnapshot_Aggregates(t *testing.T) {
	stats := NewStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400, 500} {
		stats.Record(ms)
	}

	snap := stats.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 || snap.MaxMs != 500 {
		t.Errorf("expected min=100 max=500, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Errorf("expected avg=300, got %f", snap.AvgMs)
	}
	// Nearest-rank: p50 -> 3rd of 5 = 300, p95 and p99 -> 5th = 500.
	if snap.P50Ms != 300 {
		t.Errorf("expected p50=300, got %d", snap.P50Ms)
	}
	if snap.P95Ms != 500 {
		t.Errorf("expected p95=500, got %d", snap.P95Ms)
	}
	if snap.P99Ms != 500 {
		t.Errorf("expected p99=500, got %d", snap.P99Ms)
	}
}

func TestStatsSnapshot_Empty(t *testing.T) {
	stats := NewStats(time.Hour)
	snap := stats.Snapshot()
	if snap.Count != 0 {
		t.Errorf("expected count=0, got %d", snap.Count)
	}
}

func TestStats_WindowEviction(t *testing.T) {
	stats := NewStats(10 * time.Millisecond)
	stats.Record(100)
	time.Sleep(25 * time.Millisecond)

	if snap := stats.Snapshot(); snap.Count != 0 {
		t.Fatalf("expected aged-out sample to be evicted, got count=%d", snap.Count)
	}

	stats.Record(250)
	snap := stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinMs != 250 || snap.MaxMs != 250 {
		t.Errorf("expected min=max=250, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestStats_NegativeLatencyClamped(t *testing.T) {
	stats := NewStats(time.Hour)
	stats.Record(-5)
	snap := stats.Snapshot()
	if snap.Count != 1 || snap.MinMs != 0 {
		t.Errorf("expected one sample clamped to 0, got count=%d min=%d", snap.Count, snap.MinMs)
	}
}
