package seeder

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ProgressEntry tracks one category's state within a run.
type ProgressEntry struct {
	Category  string
	Expected  int
	Processed int
	Skipped   int
	Failed    int
	Completed bool
}

// Ledger records per-category progress for the run summary and for
// deciding whether a category finished cleanly.
type Ledger struct {
	mu      sync.Mutex
	order   []string
	entries map[string]*ProgressEntry
}

func NewLedger() *Ledger {
	return &Ledger{entries: make(map[string]*ProgressEntry)}
}

// Start registers a category, resetting its counters. Calling Start again
// (category retry) starts the attempt over.
func (l *Ledger) Start(category string, expected int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries[category]; !ok {
		l.order = append(l.order, category)
	}
	l.entries[category] = &ProgressEntry{Category: category, Expected: expected}
}

func (l *Ledger) ItemDone(category string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e := l.entries[category]; e != nil {
		e.Processed++
	}
}

func (l *Ledger) ItemSkipped(category string, n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e := l.entries[category]; e != nil {
		e.Skipped += n
	}
}

func (l *Ledger) ItemFailed(category string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e := l.entries[category]; e != nil {
		e.Failed++
	}
}

func (l *Ledger) Complete(category string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e := l.entries[category]; e != nil {
		e.Completed = true
	}
}

// Entries returns copies of all category entries in start order.
func (l *Ledger) Entries() []ProgressEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]ProgressEntry, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, *l.entries[name])
	}
	return out
}

// Summary renders a human-readable run report.
func (l *Ledger) Summary() string {
	var b strings.Builder
	for _, e := range l.Entries() {
		status := "incomplete"
		if e.Completed {
			status = "done"
		}
		fmt.Fprintf(&b, "%-28s %s: %d/%d processed, %d skipped, %d failed\n",
			e.Category, status, e.Processed, e.Expected, e.Skipped, e.Failed)
	}
	return b.String()
}

// ErrorEntry is one recorded request failure.
type ErrorEntry struct {
	URL  string
	Err  string
	Time time.Time
}

// Stats aggregates request counters for a run. It implements
// pokeapi.Recorder so the client reports into it directly.
type Stats struct {
	RunID   uuid.UUID
	Started time.Time

	total  atomic.Int64
	failed atomic.Int64

	mu     sync.Mutex
	errors []ErrorEntry
}

func NewStats() *Stats {
	return &Stats{RunID: uuid.New(), Started: time.Now()}
}

func (s *Stats) RequestStarted() {
	s.total.Add(1)
}

func (s *Stats) RequestFailed(url string, err error) {
	s.failed.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, ErrorEntry{URL: url, Err: err.Error(), Time: time.Now()})
}

func (s *Stats) TotalRequests() int64  { return s.total.Load() }
func (s *Stats) FailedRequests() int64 { return s.failed.Load() }

func (s *Stats) Errors() []ErrorEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ErrorEntry, len(s.errors))
	copy(out, s.errors)
	return out
}

func (s *Stats) Elapsed() time.Duration { return time.Since(s.Started) }
