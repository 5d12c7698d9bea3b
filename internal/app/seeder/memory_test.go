package seeder

import (
	"context"
	"testing"
	"time"
)

func TestGovernorPurgesOverWatermark(t *testing.T) {
	purged := 0
	g := NewGovernor(100, testLogger(), func() { purged++ })
	g.pause = 0

	rss := uint64(50 * 1024 * 1024)
	g.sample = func() (uint64, error) { return rss, nil }

	g.Check(context.Background())
	if purged != 0 {
		t.Fatalf("purged below watermark: %d", purged)
	}

	rss = 200 * 1024 * 1024
	g.Check(context.Background())
	if purged != 1 {
		t.Fatalf("purges = %d, want 1", purged)
	}

	// The guard resets after a purge, so sustained pressure purges again.
	g.Check(context.Background())
	if purged != 2 {
		t.Fatalf("purges = %d, want 2", purged)
	}
}

func TestGovernorPurgeClearsTransientState(t *testing.T) {
	repo := newMockRepo()
	p := newTestPipeline(t, repo, newFakeFetcher())
	p.run.recordEvolvesFrom(2, 1)
	p.run.recordChainHint(2, 7)

	p.governor.pause = 0
	p.governor.sample = func() (uint64, error) { return 1 << 41, nil }
	p.governor.Check(context.Background())

	if repo.purges != 1 {
		t.Errorf("id cache purges = %d, want 1", repo.purges)
	}
	if got := p.run.lineage(); len(got) != 0 {
		t.Errorf("lineage after purge = %v, want empty", got)
	}
	if got := p.run.chainHints(); len(got) != 0 {
		t.Errorf("chain hints after purge = %v, want empty", got)
	}
}

func TestGovernorSampleErrorIsNonFatal(t *testing.T) {
	purged := 0
	g := NewGovernor(100, testLogger(), func() { purged++ })
	g.sample = func() (uint64, error) { return 0, context.DeadlineExceeded }

	g.Check(context.Background())
	if purged != 0 {
		t.Error("sampling failure must not trigger a purge")
	}
}

func TestGovernorHonoursCancelledPause(t *testing.T) {
	g := NewGovernor(1, testLogger())
	g.pause = time.Minute
	g.sample = func() (uint64, error) { return 2 * 1024 * 1024, nil }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		g.Check(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Check blocked on pause despite cancelled context")
	}
}
