package seeder

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// Governor watches the process RSS and, past a watermark, purges run-scoped
// caches to keep a long run within its memory envelope.
type Governor struct {
	log       *slog.Logger
	watermark uint64
	pause     time.Duration
	purgers   []func()
	cleaning  atomic.Bool
	sample    func() (uint64, error)
}

// NewGovernor builds a governor with the given watermark in megabytes.
// Purgers run in order when the watermark is exceeded.
func NewGovernor(watermarkMB int, logger *slog.Logger, purgers ...func()) *Governor {
	g := &Governor{
		log:       logger.With("component", "governor"),
		watermark: uint64(watermarkMB) * 1024 * 1024,
		pause:     2 * time.Second,
		purgers:   purgers,
	}
	g.sample = g.processRSS
	return g
}

func (g *Governor) processRSS() (uint64, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	mi, err := proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return mi.RSS, nil
}

// Check samples memory and purges caches if over the watermark. Concurrent
// calls during a purge are no-ops so parallel workers cannot stampede.
func (g *Governor) Check(ctx context.Context) {
	rss, err := g.sample()
	if err != nil {
		g.log.Warn("memory sample failed", "error", err)
		return
	}
	if rss <= g.watermark {
		return
	}
	if !g.cleaning.CompareAndSwap(false, true) {
		return
	}
	defer g.cleaning.Store(false)

	g.log.Warn("memory watermark exceeded, purging caches",
		"rss_mb", rss/1024/1024, "watermark_mb", g.watermark/1024/1024)
	for _, purge := range g.purgers {
		purge()
	}
	runtime.GC()

	select {
	case <-time.After(g.pause):
	case <-ctx.Done():
	}
}
