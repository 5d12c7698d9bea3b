package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Strategy selects how a request reaches the catalog.
type Strategy string

const (
	// StrategyTunnel issues requests directly through an authenticated
	// HTTP CONNECT tunnel.
	StrategyTunnel Strategy = "tunnel"
	// StrategyProxy wraps the target URL for a forwarding proxy that
	// answers with a {contents: string} envelope.
	StrategyProxy Strategy = "proxy"
)

// Recorder receives request accounting events from the client. The
// run's stats object implements it.
type Recorder interface {
	// RequestStarted is called before every attempt, success or failure.
	RequestStarted()
	// RequestFailed is called once per fetch whose retry ceiling was
	// exhausted, never per attempt.
	RequestFailed(url string, err error)
}

// Config holds transport settings.
type Config struct {
	BaseURL        string
	Strategy       Strategy
	ProxyBaseURL   string
	TunnelHost     string
	TunnelPort     int
	TunnelUser     string
	TunnelPassword string
	RetryLimit     int
	RetryDelay     time.Duration
	PacingDelay    time.Duration
	Timeout        time.Duration
	PageSize       int
	MaxPages       int
}

func (c *Config) applyDefaults() {
	if c.RetryLimit <= 0 {
		c.RetryLimit = 3
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = 5 * time.Second
	}
	if c.PacingDelay <= 0 {
		if c.Strategy == StrategyProxy {
			c.PacingDelay = 1500 * time.Millisecond
		} else {
			c.PacingDelay = 300 * time.Millisecond
		}
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.PageSize <= 0 {
		c.PageSize = 200
	}
	if c.MaxPages <= 0 {
		c.MaxPages = 30
	}
}

// Client fetches catalog resources through one of two transport
// strategies, with pacing before every attempt and a fixed retry
// ceiling per fetch.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *Cache
	rec        Recorder
	log        *slog.Logger
}

// NewClient creates a Client. For the tunnel strategy the credentials
// must be complete; an incomplete tunnel configuration is an error.
func NewClient(cfg Config, cache *Cache, rec Recorder, logger *slog.Logger) (*Client, error) {
	cfg.applyDefaults()

	transport := http.DefaultTransport.(*http.Transport).Clone()
	switch cfg.Strategy {
	case StrategyTunnel:
		if cfg.TunnelHost == "" || cfg.TunnelPort == 0 || cfg.TunnelUser == "" || cfg.TunnelPassword == "" {
			return nil, fmt.Errorf("pokeapi: tunnel credentials incomplete")
		}
		tunnelURL := &url.URL{
			Scheme: "http",
			User:   url.UserPassword(cfg.TunnelUser, cfg.TunnelPassword),
			Host:   fmt.Sprintf("%s:%d", cfg.TunnelHost, cfg.TunnelPort),
		}
		transport.Proxy = http.ProxyURL(tunnelURL)
	case StrategyProxy:
		if cfg.ProxyBaseURL == "" {
			return nil, fmt.Errorf("pokeapi: proxy base URL not configured")
		}
	default:
		return nil, fmt.Errorf("pokeapi: unknown strategy %q", cfg.Strategy)
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout, Transport: transport},
		limiter:    rate.NewLimiter(rate.Every(cfg.PacingDelay), 1),
		cache:      cache,
		rec:        rec,
		log:        logger.With("adapter", "pokeapi"),
	}, nil
}

// Fetch returns the decoded JSON body of rawURL. Responses are served
// from the run cache when possible; on a miss, each attempt is preceded
// by a pacing delay and the retry ceiling applies. One error entry is
// recorded only after the ceiling is exhausted.
func (c *Client) Fetch(ctx context.Context, rawURL string) (json.RawMessage, error) {
	if body, ok := c.cache.Get(rawURL); ok {
		return body, nil
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.RetryLimit; attempt++ {
		if attempt > 0 {
			c.log.Warn("fetch retry",
				slog.String("url", rawURL),
				slog.Int("attempt", attempt),
				slog.String("error", lastErr.Error()),
			)
			if err := sleepCtx(ctx, c.cfg.RetryDelay); err != nil {
				return nil, err
			}
		}

		if err := c.pace(ctx); err != nil {
			return nil, err
		}
		if c.rec != nil {
			c.rec.RequestStarted()
		}

		body, err := c.do(ctx, rawURL)
		if err == nil {
			c.cache.Put(rawURL, body)
			return body, nil
		}
		lastErr = err
	}

	if c.rec != nil {
		c.rec.RequestFailed(rawURL, lastErr)
	}
	return nil, fmt.Errorf("fetch %s: %w", rawURL, lastErr)
}

// pace blocks until the next attempt is allowed. The tunnel strategy
// adds a small random jitter on top of the fixed interval.
func (c *Client) pace(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	if c.cfg.Strategy == StrategyTunnel {
		jitter := time.Duration(rand.Int64N(int64(c.cfg.PacingDelay)/2 + 1))
		return sleepCtx(ctx, jitter)
	}
	return nil
}

func (c *Client) do(ctx context.Context, rawURL string) (json.RawMessage, error) {
	switch c.cfg.Strategy {
	case StrategyProxy:
		return c.doProxy(ctx, rawURL)
	default:
		return c.doTunnel(ctx, rawURL)
	}
}

// doTunnel issues the request directly to the target through the
// authenticated tunnel transport.
func (c *Client) doTunnel(ctx context.Context, rawURL string) (json.RawMessage, error) {
	body, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response body")
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("response is not valid JSON")
	}
	return body, nil
}

// proxyEnvelope is the forwarding proxy's response shape; contents
// holds the JSON-encoded target body.
type proxyEnvelope struct {
	Contents string `json:"contents"`
}

// doProxy wraps the target URL for the forwarding proxy and unwraps
// the envelope.
func (c *Client) doProxy(ctx context.Context, rawURL string) (json.RawMessage, error) {
	wrapped := c.cfg.ProxyBaseURL + url.QueryEscape(rawURL)

	body, err := c.get(ctx, wrapped)
	if err != nil {
		return nil, err
	}

	var env proxyEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode proxy envelope: %w", err)
	}
	if env.Contents == "" {
		return nil, fmt.Errorf("proxy envelope has no contents")
	}
	if !json.Valid([]byte(env.Contents)) {
		return nil, fmt.Errorf("proxy envelope contents is not valid JSON")
	}
	return json.RawMessage(env.Contents), nil
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// FetchAs fetches rawURL and decodes the body into T.
func FetchAs[T any](ctx context.Context, c *Client, rawURL string) (*T, error) {
	body, err := c.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return &out, nil
}

// sleepCtx sleeps for d unless ctx is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
