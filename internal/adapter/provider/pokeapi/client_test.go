package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/pokebase/backend/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// recorderStub counts accounting events the way the run stats do.
type recorderStub struct {
	mu      sync.Mutex
	started int
	failed  []string
}

func (r *recorderStub) RequestStarted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started++
}

func (r *recorderStub) RequestFailed(url string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = append(r.failed, url)
}

// envelope wraps body the way the forwarding proxy does.
func envelope(t *testing.T, body any) []byte {
	t.Helper()
	inner, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal inner body: %v", err)
	}
	out, err := json.Marshal(proxyEnvelope{Contents: string(inner)})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return out
}

func newProxyClient(t *testing.T, srv *httptest.Server, rec Recorder) *Client {
	t.Helper()
	c, err := NewClient(Config{
		BaseURL:      "https://catalog.example/api/v2",
		Strategy:     StrategyProxy,
		ProxyBaseURL: srv.URL + "/forward?url=",
		RetryLimit:   2,
		RetryDelay:   time.Millisecond,
		PacingDelay:  time.Millisecond,
		PageSize:     200,
		MaxPages:     30,
	}, NewCache(), rec, testLogger())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestFetchRetryCeiling(t *testing.T) {
	var mu sync.Mutex
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	rec := &recorderStub{}
	c := newProxyClient(t, srv, rec)

	_, err := c.Fetch(context.Background(), "https://catalog.example/api/v2/thing/1")
	if err == nil {
		t.Fatal("expected error after retry ceiling")
	}

	// Ceiling of 2 means the initial attempt plus two retries.
	if want := 3; hits != want {
		t.Errorf("server hits = %d, want %d", hits, want)
	}
	if rec.started != 3 {
		t.Errorf("RequestStarted calls = %d, want 3", rec.started)
	}
	if len(rec.failed) != 1 {
		t.Fatalf("RequestFailed calls = %d, want 1", len(rec.failed))
	}
	if rec.failed[0] != "https://catalog.example/api/v2/thing/1" {
		t.Errorf("recorded failure url = %q, want original url", rec.failed[0])
	}
}

func TestFetchRecoversWithinCeiling(t *testing.T) {
	var mu sync.Mutex
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		n := hits
		mu.Unlock()
		if n < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write(envelope(t, map[string]any{"id": 7}))
	}))
	defer srv.Close()

	rec := &recorderStub{}
	c := newProxyClient(t, srv, rec)

	body, err := c.Fetch(context.Background(), "https://catalog.example/api/v2/thing/7")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	var got struct{ ID int }
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != 7 {
		t.Errorf("decoded id = %d, want 7", got.ID)
	}
	if len(rec.failed) != 0 {
		t.Errorf("RequestFailed calls = %d, want 0 on eventual success", len(rec.failed))
	}
}

func TestFetchCacheHitSkipsNetwork(t *testing.T) {
	var mu sync.Mutex
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		w.Write(envelope(t, map[string]any{"id": 1}))
	}))
	defer srv.Close()

	c := newProxyClient(t, srv, &recorderStub{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := c.Fetch(ctx, "https://catalog.example/api/v2/thing/1"); err != nil {
			t.Fatalf("Fetch %d: %v", i, err)
		}
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1 (cache must serve repeats)", hits)
	}
}

func TestProxyEnvelopeEmptyContentsFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(proxyEnvelope{})
	}))
	defer srv.Close()

	c := newProxyClient(t, srv, &recorderStub{})
	if _, err := c.Fetch(context.Background(), "https://catalog.example/api/v2/thing/1"); err == nil {
		t.Fatal("expected error for empty envelope contents")
	}
}

func TestProxyWrapsOriginalURL(t *testing.T) {
	var gotRaw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRaw = r.URL.Query().Get("url")
		w.Write(envelope(t, map[string]any{"id": 1}))
	}))
	defer srv.Close()

	c := newProxyClient(t, srv, &recorderStub{})
	orig := "https://catalog.example/api/v2/thing?limit=200&offset=0"
	if _, err := c.Fetch(context.Background(), orig); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotRaw != orig {
		t.Errorf("proxy received %q, want the original url", gotRaw)
	}
}

func TestTunnelCredentialsIncomplete(t *testing.T) {
	_, err := NewClient(Config{
		Strategy:   StrategyTunnel,
		TunnelHost: "tunnel.example",
		TunnelPort: 3128,
		TunnelUser: "u",
		// password missing
	}, NewCache(), nil, testLogger())
	if err == nil {
		t.Fatal("expected error for incomplete tunnel credentials")
	}
}

func TestCrawlCollectsAllPages(t *testing.T) {
	pageSizes := map[int]int{0: 200, 200: 200, 400: 50}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("url")
		target, err := url.Parse(raw)
		if err != nil {
			t.Errorf("parse forwarded url %q: %v", raw, err)
		}
		offset, _ := strconv.Atoi(target.Query().Get("offset"))
		n := pageSizes[offset]
		page := CollectionPage{Count: 450}
		for i := 0; i < n; i++ {
			id := offset + i + 1
			page.Results = append(page.Results, ref(id))
		}
		w.Write(envelope(t, page))
	}))
	defer srv.Close()

	c := newProxyClient(t, srv, &recorderStub{})
	refs, err := c.Crawl(context.Background(), "thing")
	if err != nil {
		t.Fatalf("Crawl: %v", err)
	}
	if len(refs) != 450 {
		t.Fatalf("collected %d refs, want 450", len(refs))
	}
	if id, _ := refs[0].ID(); id != 1 {
		t.Errorf("first ref id = %d, want 1", id)
	}
	if id, _ := refs[449].ID(); id != 450 {
		t.Errorf("last ref id = %d, want 450", id)
	}
}

func TestCrawlStopsAtPageCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := CollectionPage{Count: 1 << 20}
		for i := 0; i < 200; i++ {
			page.Results = append(page.Results, ref(i+1))
		}
		w.Write(envelope(t, page))
	}))
	defer srv.Close()

	c, err := NewClient(Config{
		BaseURL:      "https://catalog.example/api/v2",
		Strategy:     StrategyProxy,
		ProxyBaseURL: srv.URL + "/forward?url=",
		RetryLimit:   1,
		RetryDelay:   time.Millisecond,
		PacingDelay:  time.Millisecond,
		PageSize:     200,
		MaxPages:     3,
	}, NewCache(), nil, testLogger())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	refs, err := c.Crawl(context.Background(), "thing")
	if err != nil {
		t.Fatalf("Crawl: %v", err)
	}
	if len(refs) != 600 {
		t.Errorf("collected %d refs, want 600 (3 capped pages)", len(refs))
	}
}

func ref(id int) domain.ResourceRef {
	return domain.ResourceRef{
		Name: fmt.Sprintf("thing-%d", id),
		URL:  fmt.Sprintf("https://catalog.example/api/v2/thing/%d/", id),
	}
}
