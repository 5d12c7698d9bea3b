package seeder

import (
	"context"
	"encoding/json"

	"github.com/pokebase/backend/internal/domain"
)

// CatalogRepo is the storage surface the pipeline writes through. Implemented
// by adapter/postgres/catalog.Repo; mocked in tests.
type CatalogRepo interface {
	UpsertRecord(ctx context.Context, kind domain.Kind, id int, fields map[string]any) error
	UpsertJoin(ctx context.Context, kind domain.Kind, primaryID int, refs []domain.ResourceRef) (int, error)
	AddJoinedData(ctx context.Context, kind domain.Kind, primaryID int, rows []domain.JoinRow) error
	ExistingIDs(ctx context.Context, kind domain.Kind) (map[int]bool, error)
	HasRelated(ctx context.Context, kind domain.Kind, primaryID int) (bool, error)

	TypeIDs(ctx context.Context) ([]int, error)
	EfficacyPairs(ctx context.Context) (map[[2]int]bool, error)
	InsertEfficacy(ctx context.Context, damageTypeID, targetTypeID int, factor float64) error
	FindOrCreateEvolution(ctx context.Context, req domain.EvolutionRequirement) error
	SetSpeciesChain(ctx context.Context, speciesID, chainID int) error
	SetSpeciesEvolvesFrom(ctx context.Context, speciesID, fromSpeciesID int) error

	PurgeIDCache()
}

// Fetcher abstracts the upstream catalog client.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (json.RawMessage, error)
	Crawl(ctx context.Context, endpoint string) ([]domain.ResourceRef, error)
}

// fetchAs retrieves a resource and decodes it into T.
func fetchAs[T any](ctx context.Context, f Fetcher, rawURL string) (*T, error) {
	raw, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
