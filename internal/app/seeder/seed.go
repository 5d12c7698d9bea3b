package seeder

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pokebase/backend/internal/adapter/provider/pokeapi"
	"github.com/pokebase/backend/internal/domain"
)

type seedMode int

const (
	modeBatched seedMode = iota
	modeSequential
)

// category describes how one entity kind is crawled and materialized.
type category struct {
	name     string
	endpoint string
	// kind, when set, enables resumability: IDs already present in the
	// kind's table are skipped on re-runs.
	kind domain.Kind
	mode seedMode
	// process fetches and writes one resource. Its return value, if
	// non-nil, is collected in crawl order and handed to postPass.
	process func(ctx context.Context, ref domain.ResourceRef) (any, error)
	// gapCheck, when set, forces reprocessing of an existing ID whose
	// dependent rows are incomplete.
	gapCheck func(ctx context.Context, id int) (bool, error)
	// postPass runs once after all items, over the collected results.
	postPass func(ctx context.Context, results []any) error
	// heavy categories poke the memory governor as they go.
	heavy bool
}

// runCategory executes a category under a timeout, retrying the whole
// category with linearly growing backoff when it fails.
func (p *Pipeline) runCategory(ctx context.Context, cat category) error {
	var lastErr error
	for attempt := 1; attempt <= p.cfg.CategoryRetries; attempt++ {
		if attempt > 1 {
			backoff := p.cfg.RetryBackoffBase * time.Duration(attempt-1)
			p.log.Warn("category failed, retrying",
				"category", cat.name, "attempt", attempt, "backoff", backoff, "error", lastErr)
			if err := sleepCtx(ctx, backoff); err != nil {
				return err
			}
			p.governor.Check(ctx)
		}

		cctx, cancel := context.WithTimeout(ctx, p.cfg.CategoryTimeout)
		err := p.seedCategory(cctx, cat)
		cancel()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return fmt.Errorf("category %s: %w", cat.name, ctx.Err())
		}
		lastErr = err
	}
	return fmt.Errorf("category %s: retries exhausted: %w", cat.name, lastErr)
}

func (p *Pipeline) seedCategory(ctx context.Context, cat category) error {
	refs, err := p.client.Crawl(ctx, cat.endpoint)
	if err != nil {
		return fmt.Errorf("crawl %s: %w", cat.endpoint, err)
	}
	p.ledger.Start(cat.name, len(refs))

	pending, err := p.filterPending(ctx, cat, refs)
	if err != nil {
		return err
	}
	if skipped := len(refs) - len(pending); skipped > 0 {
		p.ledger.ItemSkipped(cat.name, skipped)
		p.log.Info("resuming category", "category", cat.name,
			"total", len(refs), "already_present", skipped, "pending", len(pending))
	}

	if p.cfg.DryRun {
		p.log.Info("dry run, skipping writes", "category", cat.name, "would_process", len(pending))
		p.ledger.Complete(cat.name)
		return nil
	}

	results := make([]any, len(pending))
	mode := cat.mode
	// The forwarding proxy serializes requests, so batched rounds run one
	// item at a time under it.
	if p.cfg.Transport == string(pokeapi.StrategyProxy) {
		mode = modeSequential
	}
	switch mode {
	case modeSequential:
		err = p.seedSequential(ctx, cat, pending, results)
	default:
		err = p.seedBatched(ctx, cat, pending, results)
	}
	if err != nil {
		return err
	}

	if cat.postPass != nil {
		collected := make([]any, 0, len(results))
		for _, r := range results {
			if r != nil {
				collected = append(collected, r)
			}
		}
		if err := cat.postPass(ctx, collected); err != nil {
			return fmt.Errorf("post-pass %s: %w", cat.name, err)
		}
	}

	p.ledger.Complete(cat.name)
	return nil
}

// filterPending drops refs whose IDs already exist, unless gapCheck says the
// existing row is missing dependent data.
func (p *Pipeline) filterPending(ctx context.Context, cat category, refs []domain.ResourceRef) ([]domain.ResourceRef, error) {
	if cat.kind == "" {
		return refs, nil
	}
	existing, err := p.repo.ExistingIDs(ctx, cat.kind)
	if err != nil {
		return nil, fmt.Errorf("existing ids %s: %w", cat.kind, err)
	}
	pending := make([]domain.ResourceRef, 0, len(refs))
	for _, ref := range refs {
		id, ok := domain.IDFromURL(ref.URL)
		if !ok {
			p.log.Warn("skipping ref with unparsable id", "category", cat.name, "url", ref.URL)
			continue
		}
		if !existing[id] {
			pending = append(pending, ref)
			continue
		}
		if cat.gapCheck != nil {
			redo, err := cat.gapCheck(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("gap check %s id %d: %w", cat.name, id, err)
			}
			if redo {
				pending = append(pending, ref)
			}
		}
	}
	return pending, nil
}

// seedBatched processes pending refs in rounds of BatchSize concurrent
// workers, awaiting each round before the next. Item failures are isolated:
// logged and counted, never fatal to the category.
func (p *Pipeline) seedBatched(ctx context.Context, cat category, pending []domain.ResourceRef, results []any) error {
	size := p.cfg.BatchSize
	if size < 1 {
		size = 1
	}
	for start := 0; start < len(pending); start += size {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := start + size
		if end > len(pending) {
			end = len(pending)
		}
		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				p.runItem(gctx, cat, pending[i], results, i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		if cat.heavy {
			p.governor.Check(ctx)
		}
	}
	return nil
}

func (p *Pipeline) seedSequential(ctx context.Context, cat category, pending []domain.ResourceRef, results []any) error {
	for i, ref := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.runItem(ctx, cat, ref, results, i)
		if cat.heavy && i%25 == 24 {
			p.governor.Check(ctx)
		}
	}
	return nil
}

func (p *Pipeline) runItem(ctx context.Context, cat category, ref domain.ResourceRef, results []any, i int) {
	res, err := cat.process(ctx, ref)
	if err != nil {
		p.ledger.ItemFailed(cat.name)
		p.log.Warn("item failed", "category", cat.name, "url", ref.URL, "error", err)
		return
	}
	p.ledger.ItemDone(cat.name)
	results[i] = res
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
