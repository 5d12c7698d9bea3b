package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/pokebase/backend/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// mockRepo is an in-memory CatalogRepo that records every mutation.
type mockRepo struct {
	mu sync.Mutex

	records map[domain.Kind]map[int]map[string]any
	joins   map[domain.Kind]map[[2]int]map[string]any

	typeIDs     []int
	efficacy    map[[2]int]float64
	evolutions  []domain.EvolutionRequirement
	chainOf     map[int]int
	evolvesFrom map[int]int

	purges int
	calls  []string
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		records:     make(map[domain.Kind]map[int]map[string]any),
		joins:       make(map[domain.Kind]map[[2]int]map[string]any),
		efficacy:    make(map[[2]int]float64),
		chainOf:     make(map[int]int),
		evolvesFrom: make(map[int]int),
	}
}

func (m *mockRepo) logCall(format string, args ...any) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

// seedRecord pre-populates an existing row, as if from a previous run.
func (m *mockRepo) seedRecord(kind domain.Kind, id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.records[kind] == nil {
		m.records[kind] = make(map[int]map[string]any)
	}
	m.records[kind][id] = map[string]any{}
}

func (m *mockRepo) seedJoin(kind domain.Kind, primaryID, secondaryID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.joins[kind] == nil {
		m.joins[kind] = make(map[[2]int]map[string]any)
	}
	m.joins[kind][[2]int{primaryID, secondaryID}] = map[string]any{}
}

func (m *mockRepo) UpsertRecord(_ context.Context, kind domain.Kind, id int, fields map[string]any) error {
	if id <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.records[kind] == nil {
		m.records[kind] = make(map[int]map[string]any)
	}
	m.records[kind][id] = fields
	m.logCall("UpsertRecord(%s, %d)", kind, id)
	return nil
}

func (m *mockRepo) UpsertJoin(_ context.Context, kind domain.Kind, primaryID int, refs []domain.ResourceRef) (int, error) {
	spec, ok := kind.JoinSpec()
	if !ok {
		return 0, fmt.Errorf("not a join kind: %s", kind)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	skipped := 0
	for _, ref := range refs {
		secondaryID, ok := ref.ID()
		if !ok || m.records[spec.Secondary][secondaryID] == nil {
			skipped++
			continue
		}
		if m.joins[kind] == nil {
			m.joins[kind] = make(map[[2]int]map[string]any)
		}
		m.joins[kind][[2]int{primaryID, secondaryID}] = nil
	}
	m.logCall("UpsertJoin(%s, %d)", kind, primaryID)
	return skipped, nil
}

func (m *mockRepo) AddJoinedData(_ context.Context, kind domain.Kind, primaryID int, rows []domain.JoinRow) error {
	spec, ok := kind.JoinSpec()
	if !ok {
		return fmt.Errorf("not a join kind: %s", kind)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range rows {
		if row.SecondaryID <= 0 || m.records[spec.Secondary][row.SecondaryID] == nil {
			continue
		}
		if m.joins[kind] == nil {
			m.joins[kind] = make(map[[2]int]map[string]any)
		}
		m.joins[kind][[2]int{primaryID, row.SecondaryID}] = row.Fields
	}
	m.logCall("AddJoinedData(%s, %d)", kind, primaryID)
	return nil
}

func (m *mockRepo) ExistingIDs(_ context.Context, kind domain.Kind) (map[int]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := make(map[int]bool, len(m.records[kind]))
	for id := range m.records[kind] {
		set[id] = true
	}
	return set, nil
}

func (m *mockRepo) HasRelated(_ context.Context, kind domain.Kind, primaryID int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.joins[kind] {
		if key[0] == primaryID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepo) TypeIDs(_ context.Context) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.typeIDs != nil {
		return m.typeIDs, nil
	}
	var ids []int
	for id := range m.records[domain.KindType] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *mockRepo) EfficacyPairs(_ context.Context) (map[[2]int]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pairs := make(map[[2]int]bool, len(m.efficacy))
	for key := range m.efficacy {
		pairs[key] = true
	}
	return pairs, nil
}

func (m *mockRepo) InsertEfficacy(_ context.Context, damageTypeID, targetTypeID int, factor float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]int{damageTypeID, targetTypeID}
	if _, exists := m.efficacy[key]; exists {
		// Mirrors ON CONFLICT DO NOTHING: declared factors stay put.
		return nil
	}
	m.efficacy[key] = factor
	return nil
}

func (m *mockRepo) FindOrCreateEvolution(_ context.Context, req domain.EvolutionRequirement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, have := range m.evolutions {
		if evolutionEqual(have, req) {
			return nil
		}
	}
	m.evolutions = append(m.evolutions, req)
	return nil
}

func (m *mockRepo) SetSpeciesChain(_ context.Context, speciesID, chainID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chainOf[speciesID] = chainID
	return nil
}

func (m *mockRepo) SetSpeciesEvolvesFrom(_ context.Context, speciesID, fromSpeciesID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evolvesFrom[speciesID] = fromSpeciesID
	return nil
}

func (m *mockRepo) PurgeIDCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purges++
}

func evolutionEqual(a, b domain.EvolutionRequirement) bool {
	eqPtr := func(x, y *int) bool {
		if x == nil || y == nil {
			return x == y
		}
		return *x == *y
	}
	return a.EvolvedSpeciesID == b.EvolvedSpeciesID &&
		a.TriggerID == b.TriggerID &&
		eqPtr(a.ItemID, b.ItemID) &&
		eqPtr(a.HeldItemID, b.HeldItemID) &&
		eqPtr(a.LocationID, b.LocationID) &&
		eqPtr(a.KnownMoveID, b.KnownMoveID) &&
		eqPtr(a.PartySpeciesID, b.PartySpeciesID) &&
		eqPtr(a.TradeSpeciesID, b.TradeSpeciesID) &&
		eqPtr(a.MinLevel, b.MinLevel) &&
		eqPtr(a.MinHappiness, b.MinHappiness) &&
		eqPtr(a.MinBeauty, b.MinBeauty) &&
		eqPtr(a.MinAffection, b.MinAffection) &&
		eqPtr(a.GenderID, b.GenderID) &&
		eqPtr(a.RelativePhysicalStats, b.RelativePhysicalStats) &&
		a.TimeOfDay == b.TimeOfDay &&
		a.NeedsOverworldRain == b.NeedsOverworldRain &&
		a.TurnUpsideDown == b.TurnUpsideDown
}

// fakeFetcher serves canned payloads and counts fetches per URL.
type fakeFetcher struct {
	mu      sync.Mutex
	pages   map[string][]domain.ResourceRef
	bodies  map[string]any
	fetches map[string]int
	fail    map[string]error
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages:   make(map[string][]domain.ResourceRef),
		bodies:  make(map[string]any),
		fetches: make(map[string]int),
		fail:    make(map[string]error),
	}
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches[rawURL]++
	if err, ok := f.fail[rawURL]; ok {
		return nil, err
	}
	body, ok := f.bodies[rawURL]
	if !ok {
		return nil, fmt.Errorf("no canned body for %s", rawURL)
	}
	return json.Marshal(body)
}

func (f *fakeFetcher) Crawl(_ context.Context, endpoint string) ([]domain.ResourceRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.fail["crawl:"+endpoint]; ok {
		return nil, err
	}
	return f.pages[endpoint], nil
}

func (f *fakeFetcher) fetchCount(rawURL string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches[rawURL]
}

func resourceURL(endpoint string, id int) string {
	return fmt.Sprintf("https://catalog.example/api/v2/%s/%d/", endpoint, id)
}

// addResource registers a resource in both the collection page and the
// canned body map.
func (f *fakeFetcher) addResource(endpoint string, id int, body any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	url := resourceURL(endpoint, id)
	f.pages[endpoint] = append(f.pages[endpoint], domain.ResourceRef{
		Name: fmt.Sprintf("%s-%d", endpoint, id),
		URL:  url,
	})
	f.bodies[url] = body
}

func newTestPipeline(t *testing.T, repo *mockRepo, fetcher *fakeFetcher) *Pipeline {
	t.Helper()
	cfg := Config{
		BatchSize:         4,
		CategoryRetries:   1,
		CategoryTimeout:   10 * time.Second,
		MemoryWatermarkMB: 1 << 20,
	}
	return New(cfg, fetcher, repo, NewStats(), testLogger())
}
