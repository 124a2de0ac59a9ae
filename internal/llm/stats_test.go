package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStatsSnapshotPercentiles(t *testing.T) {
	stats := NewStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400, 500} {
		stats.Record(ms, false)
	}

	snap := stats.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 || snap.MaxMs != 500 {
		t.Fatalf("expected min=100 max=500, got %d %d", snap.MinMs, snap.MaxMs)
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
}

func TestStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewStats(10 * time.Millisecond)
	stats.Record(100, false)
	time.Sleep(25 * time.Millisecond)

	if snap := stats.Snapshot(); snap.Count != 0 {
		t.Fatalf("expected count=0 after prune, got %d", snap.Count)
	}
}

func TestInstrumented_RecordsCallsAndErrors(t *testing.T) {
	stats := NewStats(time.Hour)

	ok := NewInstrumented(NewMock("fine"), stats)
	if _, err := ok.Generate(context.Background(), "p", 0.3); err != nil {
		t.Fatal(err)
	}

	bad := NewInstrumented(NewMockWithError(errors.New("down")), stats)
	if _, err := bad.Generate(context.Background(), "p", 0.3); err == nil {
		t.Fatal("expected error")
	}

	snap := stats.Snapshot()
	if snap.Count != 2 || snap.Errors != 1 {
		t.Errorf("snapshot = %+v, want count=2 errors=1", snap)
	}
}
