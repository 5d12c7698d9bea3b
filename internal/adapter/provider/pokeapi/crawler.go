package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pokebase/backend/internal/domain"
)

// Crawl paginates a collection endpoint into a complete ordered list of
// resource references. It stops when a page returns fewer items than the
// page size, or at the page cap — the cap is a safety limit logged as a
// warning, not an error. Crawl is always re-run in full; resumability is
// achieved downstream by filtering against already-materialized IDs.
func (c *Client) Crawl(ctx context.Context, endpoint string) ([]domain.ResourceRef, error) {
	base := strings.TrimRight(c.cfg.BaseURL, "/")

	var refs []domain.ResourceRef
	for page := 0; page < c.cfg.MaxPages; page++ {
		pageURL := fmt.Sprintf("%s/%s?limit=%d&offset=%d", base, endpoint, c.cfg.PageSize, page*c.cfg.PageSize)

		body, err := c.Fetch(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("crawl %s page %d: %w", endpoint, page+1, err)
		}

		var pg CollectionPage
		if err := json.Unmarshal(body, &pg); err != nil {
			return nil, fmt.Errorf("crawl %s page %d: decode: %w", endpoint, page+1, err)
		}

		refs = append(refs, pg.Results...)
		if len(pg.Results) < c.cfg.PageSize {
			return refs, nil
		}
	}

	c.log.Warn("collection crawl hit page cap",
		slog.String("endpoint", endpoint),
		slog.Int("max_pages", c.cfg.MaxPages),
		slog.Int("collected", len(refs)),
	)
	return refs, nil
}
