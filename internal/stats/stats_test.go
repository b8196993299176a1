package stats

import (
	"testing"
	"time"
)

func TestRecorderSnapshotPercentiles(t *testing.T) {
	rec := NewRecorder(time.Hour)
	for i, ms := range []int64{100, 200, 300, 400, 500} {
		rec.Record(time.Duration(ms)*time.Millisecond, 2, i != 4)
	}

	snap := rec.Snapshot()
	if snap.Runs != 5 {
		t.Fatalf("expected runs=5, got %d", snap.Runs)
	}
	if snap.Succeeded != 4 || snap.Failed != 1 {
		t.Fatalf("expected 4 succeeded and 1 failed, got %d and %d", snap.Succeeded, snap.Failed)
	}
	if snap.Documents != 10 {
		t.Fatalf("expected documents=10, got %d", snap.Documents)
	}
	if snap.MinMs != 100 || snap.MaxMs != 500 {
		t.Fatalf("expected min=100 max=500, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestRecorderPrunesExpiredSamples(t *testing.T) {
	now := time.Now()
	rec := NewRecorder(time.Minute)
	rec.now = func() time.Time { return now }
	rec.Record(100*time.Millisecond, 1, true)

	now = now.Add(2 * time.Minute)
	if snap := rec.Snapshot(); snap.Runs != 0 {
		t.Fatalf("expected runs=0 after prune, got %d", snap.Runs)
	}

	rec.Record(200*time.Millisecond, 1, false)
	snap := rec.Snapshot()
	if snap.Runs != 1 || snap.Failed != 1 {
		t.Fatalf("expected one failed run, got %+v", snap)
	}
	if snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestRecorderClampsNegativeDuration(t *testing.T) {
	rec := NewRecorder(time.Hour)
	rec.Record(-10*time.Millisecond, 1, true)
	snap := rec.Snapshot()
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestPercentileEdges(t *testing.T) {
	if got := percentile(nil, 50); got != 0 {
		t.Errorf("expected 0 for empty input, got %f", got)
	}
	vals := []int64{1, 9}
	if got := percentile(vals, 0); got != 1 {
		t.Errorf("expected 1, got %f", got)
	}
	if got := percentile(vals, 100); got != 9 {
		t.Errorf("expected 9, got %f", got)
	}
}
