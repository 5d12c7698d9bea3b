package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pokebase/backend/internal/domain"
)

// runState holds run-scoped evolution lineage hints collected while seeding
// species and consumed by the evolution graph post-pass.
type runState struct {
	mu        sync.Mutex
	evoFrom   map[int]int
	chainHint map[int]int
}

func newRunState() *runState {
	return &runState{
		evoFrom:   make(map[int]int),
		chainHint: make(map[int]int),
	}
}

func (r *runState) recordEvolvesFrom(speciesID, fromID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evoFrom[speciesID] = fromID
}

func (r *runState) recordChainHint(speciesID, chainID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chainHint[speciesID] = chainID
}

// lineage returns a copy of the evolves-from map.
func (r *runState) lineage() map[int]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int]int, len(r.evoFrom))
	for k, v := range r.evoFrom {
		out[k] = v
	}
	return out
}

// chainHints returns a copy of the species-to-chain hints gathered while
// seeding species payloads.
func (r *runState) chainHints() map[int]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int]int, len(r.chainHint))
	for k, v := range r.chainHint {
		out[k] = v
	}
	return out
}

func (r *runState) clearLineage() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evoFrom = make(map[int]int)
	r.chainHint = make(map[int]int)
}

// Pipeline crawls the upstream catalog category by category and materializes
// it into the relational store. Safe to re-run: already materialized IDs are
// skipped and every write is an upsert.
type Pipeline struct {
	cfg      Config
	log      *slog.Logger
	client   Fetcher
	repo     CatalogRepo
	stats    *Stats
	ledger   *Ledger
	governor *Governor
	run      *runState
}

// New assembles a pipeline. Purgers are cache-dropping hooks handed to the
// memory governor alongside the repository's own ID cache.
func New(cfg Config, client Fetcher, repo CatalogRepo, stats *Stats, logger *slog.Logger, purgers ...func()) *Pipeline {
	if cfg.CategoryRetries < 1 {
		cfg.CategoryRetries = 1
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}
	if cfg.MemoryWatermarkMB < 1 {
		cfg.MemoryWatermarkMB = 800
	}
	p := &Pipeline{
		cfg:    cfg,
		log:    logger.With("component", "pipeline"),
		client: client,
		repo:   repo,
		stats:  stats,
		ledger: NewLedger(),
		run:    newRunState(),
	}
	// Lineage hints are rebuilt by a later full run, so they are fair game
	// under memory pressure along with the ID cache.
	all := append([]func(){repo.PurgeIDCache, p.run.clearLineage}, purgers...)
	p.governor = NewGovernor(cfg.MemoryWatermarkMB, logger, all...)
	return p
}

func (p *Pipeline) Ledger() *Ledger { return p.ledger }
func (p *Pipeline) Stats() *Stats   { return p.stats }

// categories returns the seeding plan in dependency order. Ordering is
// advisory: optional references to not-yet-seeded rows are nulled, and a
// later full run converges them.
func (p *Pipeline) categories() []category {
	return []category{
		{name: "languages", endpoint: "language", kind: domain.KindLanguage, process: p.processLanguage, gapCheck: p.languageGap, postPass: p.languageNamesPass},
		{name: "regions", endpoint: "region", kind: domain.KindRegion, process: p.processRegion},
		{name: "generations", endpoint: "generation", kind: domain.KindGeneration, process: p.processGeneration},
		{name: "version-groups", endpoint: "version-group", kind: domain.KindVersionGroup, process: p.processVersionGroup},
		{name: "versions", endpoint: "version", kind: domain.KindVersion, process: p.processVersion},
		{name: "stats", endpoint: "stat", kind: domain.KindStat, process: p.processStat},
		{name: "characteristics", endpoint: "characteristic", kind: domain.KindCharacteristic, process: p.processCharacteristic},
		{name: "move-damage-classes", endpoint: "move-damage-class", kind: domain.KindMoveDamageClass, process: p.processMoveDamageClass},
		{name: "types", endpoint: "type", process: p.processType, postPass: p.efficacyPass},
		{name: "egg-groups", endpoint: "egg-group", kind: domain.KindEggGroup, process: p.processEggGroup},
		{name: "growth-rates", endpoint: "growth-rate", kind: domain.KindGrowthRate, process: p.processGrowthRate},
		{name: "pokemon-colors", endpoint: "pokemon-color", kind: domain.KindPokemonColor, process: p.processPokemonColor},
		{name: "pokemon-shapes", endpoint: "pokemon-shape", kind: domain.KindPokemonShape, process: p.processPokemonShape},
		{name: "pokemon-habitats", endpoint: "pokemon-habitat", kind: domain.KindPokemonHabitat, process: p.processPokemonHabitat},
		{name: "abilities", endpoint: "ability", kind: domain.KindAbility, process: p.processAbility},
		{name: "item-attributes", endpoint: "item-attribute", kind: domain.KindItemAttribute, process: p.processItemAttribute},
		{name: "item-categories", endpoint: "item-category", kind: domain.KindItemCategory, process: p.processItemCategory},
		{name: "item-fling-effects", endpoint: "item-fling-effect", kind: domain.KindItemFlingEffect, process: p.processItemFlingEffect},
		{name: "items", endpoint: "item", kind: domain.KindItem, process: p.processItem},
		{name: "berry-firmness", endpoint: "berry-firmness", kind: domain.KindBerryFirmness, process: p.processBerryFirmness},
		{name: "berry-flavors", endpoint: "berry-flavor", kind: domain.KindBerryFlavor, process: p.processBerryFlavor},
		{name: "berries", endpoint: "berry", kind: domain.KindBerry, process: p.processBerry},
		{name: "natures", endpoint: "nature", kind: domain.KindNature, process: p.processNature},
		{name: "move-targets", endpoint: "move-target", kind: domain.KindMoveTarget, process: p.processMoveTarget},
		{name: "move-ailments", endpoint: "move-ailment", kind: domain.KindMoveAilment, process: p.processMoveAilment},
		{name: "move-categories", endpoint: "move-category", kind: domain.KindMoveCategory, process: p.processMoveCategory},
		{name: "moves", endpoint: "move", kind: domain.KindMove, process: p.processMove},
		{name: "machines", endpoint: "machine", kind: domain.KindMachine, process: p.processMachine},
		{name: "encounter-methods", endpoint: "encounter-method", kind: domain.KindEncounterMethod, process: p.processEncounterMethod},
		{name: "encounter-conditions", endpoint: "encounter-condition", kind: domain.KindEncounterCondition, process: p.processEncounterCondition},
		{name: "encounter-condition-values", endpoint: "encounter-condition-value", kind: domain.KindEncounterConditionValue, process: p.processEncounterConditionValue},
		{name: "locations", endpoint: "location", kind: domain.KindLocation, process: p.processLocation},
		{name: "location-areas", endpoint: "location-area", kind: domain.KindLocationArea, process: p.processLocationArea},
		{name: "pokedexes", endpoint: "pokedex", kind: domain.KindPokedex, process: p.processPokedex},
		{name: "evolution-triggers", endpoint: "evolution-trigger", kind: domain.KindEvolutionTrigger, process: p.processEvolutionTrigger},
		{name: "pokemon-species", endpoint: "pokemon-species", kind: domain.KindSpecies, mode: modeSequential,
			process: p.processSpecies, gapCheck: p.speciesGap, postPass: p.dexNumbersPass, heavy: true},
		{name: "pokemon", endpoint: "pokemon", kind: domain.KindPokemon, process: p.processPokemon, heavy: true},
		{name: "pokemon-forms", endpoint: "pokemon-form", kind: domain.KindPokemonForm, process: p.processPokemonForm},
		{name: "genders", endpoint: "gender", kind: domain.KindGender, process: p.processGender, gapCheck: p.genderGap, postPass: p.genderSpeciesPass},
		{name: "evolution-chains", endpoint: "evolution-chain", mode: modeSequential,
			process: p.processEvolutionChain, postPass: p.evolutionGraphPass},
	}
}

// PhaseNames lists all valid --phase values in execution order.
func (p *Pipeline) PhaseNames() []string {
	cats := p.categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.name
	}
	return names
}

// Run executes the seeding plan. An empty phases slice runs everything;
// otherwise only the named categories run, in plan order. A category that
// exhausts its retries aborts the run.
func (p *Pipeline) Run(ctx context.Context, phases []string) error {
	wanted := make(map[string]bool, len(phases))
	for _, name := range phases {
		wanted[name] = true
	}
	cats := p.categories()
	if len(phases) > 0 {
		filtered := cats[:0]
		for _, c := range cats {
			if wanted[c.name] {
				filtered = append(filtered, c)
				delete(wanted, c.name)
			}
		}
		if len(wanted) > 0 {
			for name := range wanted {
				return fmt.Errorf("unknown phase %q", name)
			}
		}
		cats = filtered
	}

	p.log.Info("seeding run starting",
		"run_id", p.stats.RunID, "phases", len(cats), "dry_run", p.cfg.DryRun)

	for i, cat := range cats {
		if i > 0 {
			if err := sleepCtx(ctx, p.cfg.PhaseDelay); err != nil {
				return err
			}
		}
		p.log.Info("phase starting", "category", cat.name)
		if err := p.runCategory(ctx, cat); err != nil {
			return err
		}
		p.governor.Check(ctx)
	}

	p.log.Info("seeding run finished",
		"run_id", p.stats.RunID,
		"elapsed", p.stats.Elapsed().Round(time.Second),
		"requests", p.stats.TotalRequests(),
		"failed_requests", p.stats.FailedRequests())
	return nil
}
