package seeder

import (
	"errors"
	"strings"
	"testing"
)

func TestLedgerCounting(t *testing.T) {
	l := NewLedger()
	l.Start("moves", 10)
	l.ItemDone("moves")
	l.ItemDone("moves")
	l.ItemFailed("moves")
	l.ItemSkipped("moves", 7)
	l.Complete("moves")

	entries := l.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Processed != 2 || e.Failed != 1 || e.Skipped != 7 || e.Expected != 10 || !e.Completed {
		t.Errorf("entry = %+v", e)
	}
}

func TestLedgerRestartResetsCounters(t *testing.T) {
	l := NewLedger()
	l.Start("items", 5)
	l.ItemDone("items")
	l.ItemFailed("items")

	// Category retry starts the attempt over.
	l.Start("items", 5)
	e := l.Entries()[0]
	if e.Processed != 0 || e.Failed != 0 {
		t.Errorf("restarted entry = %+v, want zeroed counters", e)
	}
	if len(l.Entries()) != 1 {
		t.Error("restart must not duplicate the entry")
	}
}

func TestLedgerSummaryOrder(t *testing.T) {
	l := NewLedger()
	l.Start("languages", 2)
	l.Complete("languages")
	l.Start("regions", 3)

	s := l.Summary()
	if !strings.Contains(s, "languages") || !strings.Contains(s, "regions") {
		t.Fatalf("summary missing categories:\n%s", s)
	}
	if strings.Index(s, "languages") > strings.Index(s, "regions") {
		t.Error("summary must keep start order")
	}
	if !strings.Contains(s, "incomplete") {
		t.Error("unfinished category must render as incomplete")
	}
}

func TestStatsRecording(t *testing.T) {
	s := NewStats()
	s.RequestStarted()
	s.RequestStarted()
	s.RequestFailed("https://catalog.example/api/v2/thing/1", errors.New("boom"))

	if s.TotalRequests() != 2 {
		t.Errorf("total = %d, want 2", s.TotalRequests())
	}
	if s.FailedRequests() != 1 {
		t.Errorf("failed = %d, want 1", s.FailedRequests())
	}
	errs := s.Errors()
	if len(errs) != 1 || errs[0].Err != "boom" {
		t.Errorf("errors = %+v", errs)
	}
	if s.RunID.String() == "" {
		t.Error("run id must be set")
	}
}
