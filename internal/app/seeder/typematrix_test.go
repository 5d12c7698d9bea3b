package seeder

import (
	"context"
	"testing"

	"github.com/pokebase/backend/internal/domain"
)

func typeBody(id int, name string, relations map[string]any) map[string]any {
	body := map[string]any{"id": id, "name": name}
	if relations != nil {
		body["damage_relations"] = relations
	}
	return body
}

func typeRef(id int) map[string]any {
	return map[string]any{"url": resourceURL("type", id)}
}

func TestTypeMatrixCompletion(t *testing.T) {
	repo := newMockRepo()
	fetcher := newFakeFetcher()

	// Fire is double against grass, half against water; water is double
	// against fire. Everything else is neutral.
	fetcher.addResource("type", 1, typeBody(1, "fire", map[string]any{
		"double_damage_to": []map[string]any{typeRef(2)},
		"half_damage_to":   []map[string]any{typeRef(3)},
	}))
	fetcher.addResource("type", 2, typeBody(2, "grass", map[string]any{
		"double_damage_from": []map[string]any{typeRef(1)},
	}))
	fetcher.addResource("type", 3, typeBody(3, "water", map[string]any{
		"double_damage_to": []map[string]any{typeRef(1)},
	}))

	p := newTestPipeline(t, repo, fetcher)
	if err := p.Run(context.Background(), []string{"types"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(repo.records[domain.KindType]) != 3 {
		t.Fatalf("type records = %d, want 3", len(repo.records[domain.KindType]))
	}
	if len(repo.efficacy) != 9 {
		t.Fatalf("efficacy entries = %d, want complete 3x3 matrix", len(repo.efficacy))
	}

	want := map[[2]int]float64{
		{1, 2}: 2.0,
		{1, 3}: 0.5,
		{3, 1}: 2.0,
	}
	for pair, factor := range repo.efficacy {
		expected, declared := want[pair]
		if declared {
			if factor != expected {
				t.Errorf("factor %v = %v, want declared %v", pair, factor, expected)
			}
			continue
		}
		if factor != 1.0 {
			t.Errorf("factor %v = %v, want neutral fill 1.0", pair, factor)
		}
	}
}

func TestMatrixNeverOverwritesDeclaredFactors(t *testing.T) {
	repo := newMockRepo()
	repo.typeIDs = []int{1, 2}
	repo.efficacy[[2]int{1, 2}] = 0.0

	p := newTestPipeline(t, repo, newFakeFetcher())
	if err := p.completeMatrix(context.Background()); err != nil {
		t.Fatalf("completeMatrix: %v", err)
	}

	if got := repo.efficacy[[2]int{1, 2}]; got != 0.0 {
		t.Errorf("declared factor overwritten: got %v, want 0.0", got)
	}
	for _, pair := range [][2]int{{1, 1}, {2, 1}, {2, 2}} {
		if got, ok := repo.efficacy[pair]; !ok || got != 1.0 {
			t.Errorf("factor %v = %v (present=%v), want neutral 1.0", pair, got, ok)
		}
	}
}

// Re-running the matrix pass over a complete matrix must change nothing.
func TestMatrixCompletionIdempotent(t *testing.T) {
	repo := newMockRepo()
	repo.typeIDs = []int{1, 2}
	p := newTestPipeline(t, repo, newFakeFetcher())

	for i := 0; i < 2; i++ {
		if err := p.completeMatrix(context.Background()); err != nil {
			t.Fatalf("completeMatrix %d: %v", i, err)
		}
	}
	if len(repo.efficacy) != 4 {
		t.Errorf("efficacy entries = %d, want 4", len(repo.efficacy))
	}
}
