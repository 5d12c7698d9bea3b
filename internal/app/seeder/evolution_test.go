package seeder

import (
	"context"
	"testing"

	"github.com/pokebase/backend/internal/adapter/provider/pokeapi"
	"github.com/pokebase/backend/internal/domain"
)

func speciesRef(id int) domain.ResourceRef {
	return domain.ResourceRef{URL: resourceURL("pokemon-species", id)}
}

func triggerDetail(triggerID int, minLevel *int) pokeapi.EvolutionDetail {
	return pokeapi.EvolutionDetail{
		Trigger:  domain.ResourceRef{URL: resourceURL("evolution-trigger", triggerID)},
		MinLevel: minLevel,
	}
}

func intp(v int) *int { return &v }

func TestParseChainLineage(t *testing.T) {
	ec := &pokeapi.EvolutionChain{
		ID: 1,
		Chain: pokeapi.ChainLink{
			Species: speciesRef(1),
			EvolvesTo: []pokeapi.ChainLink{{
				Species:          speciesRef(2),
				EvolutionDetails: []pokeapi.EvolutionDetail{triggerDetail(1, intp(16))},
				EvolvesTo: []pokeapi.ChainLink{{
					Species:          speciesRef(3),
					EvolutionDetails: []pokeapi.EvolutionDetail{triggerDetail(1, intp(32))},
				}},
			}},
		},
	}

	chain, err := parseChain(ec)
	if err != nil {
		t.Fatalf("parseChain: %v", err)
	}
	if got := chain.members(); len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("members = %v, want [1 2 3]", got)
	}
	reqs := chain.requirements()
	if len(reqs) != 2 {
		t.Fatalf("requirements = %d, want 2", len(reqs))
	}
	if reqs[0].EvolvedSpeciesID != 2 || *reqs[0].MinLevel != 16 {
		t.Errorf("first requirement = %+v, want species 2 at level 16", reqs[0])
	}
	if reqs[1].EvolvedSpeciesID != 3 || *reqs[1].MinLevel != 32 {
		t.Errorf("second requirement = %+v, want species 3 at level 32", reqs[1])
	}
	if chain.Root.Requirements != nil {
		t.Error("root node must carry no requirements")
	}
}

func TestParseChainDropsDetailWithoutTrigger(t *testing.T) {
	ec := &pokeapi.EvolutionChain{
		ID: 2,
		Chain: pokeapi.ChainLink{
			Species: speciesRef(10),
			EvolvesTo: []pokeapi.ChainLink{{
				Species:          speciesRef(11),
				EvolutionDetails: []pokeapi.EvolutionDetail{{TimeOfDay: "day"}},
			}},
		},
	}
	chain, err := parseChain(ec)
	if err != nil {
		t.Fatalf("parseChain: %v", err)
	}
	if n := len(chain.requirements()); n != 0 {
		t.Errorf("requirements = %d, want 0 when trigger is absent", n)
	}
}

func chainBody(chainID int, species ...int) map[string]any {
	link := map[string]any{
		"species": map[string]any{"url": resourceURL("pokemon-species", species[len(species)-1])},
	}
	for i := len(species) - 2; i >= 0; i-- {
		child := link
		child["evolution_details"] = []map[string]any{{
			"trigger":   map[string]any{"url": resourceURL("evolution-trigger", 1)},
			"min_level": 16 * (i + 1),
		}}
		link = map[string]any{
			"species":    map[string]any{"url": resourceURL("pokemon-species", species[i])},
			"evolves_to": []map[string]any{child},
		}
	}
	return map[string]any{"id": chainID, "chain": link}
}

func TestEvolutionChainCategory(t *testing.T) {
	repo := newMockRepo()
	for id := 1; id <= 3; id++ {
		repo.seedRecord(domain.KindSpecies, id)
	}

	fetcher := newFakeFetcher()
	fetcher.addResource("evolution-chain", 1, chainBody(1, 1, 2, 3))

	p := newTestPipeline(t, repo, fetcher)
	p.run.recordEvolvesFrom(2, 1)
	p.run.recordEvolvesFrom(3, 2)

	if err := p.Run(context.Background(), []string{"evolution-chains"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if repo.records[domain.KindEvolutionChain][1] == nil {
		t.Error("chain record missing")
	}
	if len(repo.evolutions) != 2 {
		t.Fatalf("evolution requirements = %d, want 2", len(repo.evolutions))
	}
	for id := 1; id <= 3; id++ {
		if repo.chainOf[id] != 1 {
			t.Errorf("species %d chain = %d, want 1", id, repo.chainOf[id])
		}
	}
	if repo.evolvesFrom[2] != 1 || repo.evolvesFrom[3] != 2 {
		t.Errorf("evolves-from links = %v, want 2->1 and 3->2", repo.evolvesFrom)
	}
	if len(p.run.lineage()) != 0 {
		t.Error("lineage hints must not outlive the graph pass")
	}
}

func TestEvolutionRerunCreatesNoDuplicates(t *testing.T) {
	repo := newMockRepo()
	for id := 1; id <= 3; id++ {
		repo.seedRecord(domain.KindSpecies, id)
	}
	fetcher := newFakeFetcher()
	fetcher.addResource("evolution-chain", 1, chainBody(1, 1, 2, 3))

	for i := 0; i < 2; i++ {
		p := newTestPipeline(t, repo, fetcher)
		if err := p.Run(context.Background(), []string{"evolution-chains"}); err != nil {
			t.Fatalf("Run %d: %v", i, err)
		}
	}
	if len(repo.evolutions) != 2 {
		t.Errorf("evolution requirements after rerun = %d, want 2", len(repo.evolutions))
	}
}

func TestCrossChainAbsorption(t *testing.T) {
	repo := newMockRepo()
	repo.seedRecord(domain.KindSpecies, 1)
	repo.seedRecord(domain.KindSpecies, 2)

	// Two single-member chains, but species 2 evolves from species 1:
	// species 2 is absorbed into chain 1 and chain 2 keeps no members.
	fetcher := newFakeFetcher()
	fetcher.addResource("evolution-chain", 1, chainBody(1, 1))
	fetcher.addResource("evolution-chain", 2, chainBody(2, 2))

	p := newTestPipeline(t, repo, fetcher)
	p.run.recordEvolvesFrom(2, 1)

	if err := p.Run(context.Background(), []string{"evolution-chains"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if repo.chainOf[1] != 1 {
		t.Errorf("species 1 chain = %d, want 1", repo.chainOf[1])
	}
	if repo.chainOf[2] != 1 {
		t.Errorf("species 2 chain = %d, want 1 after absorption", repo.chainOf[2])
	}
	if repo.evolvesFrom[2] != 1 {
		t.Errorf("evolves-from = %v, want 2->1", repo.evolvesFrom)
	}
}

func TestRequirementSkippedForMissingSpecies(t *testing.T) {
	repo := newMockRepo()
	repo.seedRecord(domain.KindSpecies, 1)
	// Species 2 never materialized.

	fetcher := newFakeFetcher()
	fetcher.addResource("evolution-chain", 1, chainBody(1, 1, 2))

	p := newTestPipeline(t, repo, fetcher)
	if err := p.Run(context.Background(), []string{"evolution-chains"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(repo.evolutions) != 0 {
		t.Errorf("requirements = %d, want 0 when evolved species is missing", len(repo.evolutions))
	}
}
