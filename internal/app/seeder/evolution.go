package seeder

import (
	"context"
	"fmt"

	"github.com/pokebase/backend/internal/adapter/provider/pokeapi"
	"github.com/pokebase/backend/internal/domain"
)

// ChainNode is one species in a parsed evolution chain. Requirements are
// the condition tuples under which the node's species evolves FROM its
// parent; the root carries none.
type ChainNode struct {
	SpeciesID    int
	Requirements []domain.EvolutionRequirement
	Children     []*ChainNode
}

// parsedChain is an evolution chain decoded into typed nodes. Parsing is
// side-effect free; writes happen in a separate step over the parse result.
type parsedChain struct {
	ID              int
	BabyTriggerItem *int
	Root            *ChainNode
}

// members returns every species ID in the chain, depth first.
func (c *parsedChain) members() []int {
	var ids []int
	var walk func(n *ChainNode)
	walk = func(n *ChainNode) {
		ids = append(ids, n.SpeciesID)
		for _, child := range n.Children {
			walk(child)
		}
	}
	if c.Root != nil {
		walk(c.Root)
	}
	return ids
}

// requirements returns every evolution requirement in the chain, depth first.
func (c *parsedChain) requirements() []domain.EvolutionRequirement {
	var reqs []domain.EvolutionRequirement
	var walk func(n *ChainNode)
	walk = func(n *ChainNode) {
		reqs = append(reqs, n.Requirements...)
		for _, child := range n.Children {
			walk(child)
		}
	}
	if c.Root != nil {
		walk(c.Root)
	}
	return reqs
}

func parseChain(ec *pokeapi.EvolutionChain) (*parsedChain, error) {
	root, err := parseLink(ec.Chain)
	if err != nil {
		return nil, fmt.Errorf("chain %d: %w", ec.ID, err)
	}
	c := &parsedChain{ID: ec.ID, Root: root}
	if itemID, ok := ec.BabyTriggerItem.ID(); ok {
		c.BabyTriggerItem = &itemID
	}
	return c, nil
}

func parseLink(link pokeapi.ChainLink) (*ChainNode, error) {
	speciesID, ok := link.Species.ID()
	if !ok {
		return nil, fmt.Errorf("link species ref %q has no id", link.Species.URL)
	}
	node := &ChainNode{SpeciesID: speciesID}
	for _, det := range link.EvolutionDetails {
		req, ok := parseDetail(speciesID, det)
		if !ok {
			continue
		}
		node.Requirements = append(node.Requirements, req)
	}
	for _, child := range link.EvolvesTo {
		cn, err := parseLink(child)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, cn)
	}
	return node, nil
}

// parseDetail converts one upstream detail into a requirement tuple.
// Details without a trigger are malformed and dropped.
func parseDetail(evolvedSpeciesID int, det pokeapi.EvolutionDetail) (domain.EvolutionRequirement, bool) {
	triggerID, ok := det.Trigger.ID()
	if !ok {
		return domain.EvolutionRequirement{}, false
	}
	req := domain.EvolutionRequirement{
		EvolvedSpeciesID:      evolvedSpeciesID,
		TriggerID:             triggerID,
		MinLevel:              det.MinLevel,
		MinHappiness:          det.MinHappiness,
		MinBeauty:             det.MinBeauty,
		MinAffection:          det.MinAffection,
		GenderID:              det.Gender,
		TimeOfDay:             det.TimeOfDay,
		RelativePhysicalStats: det.RelativePhysicalStats,
		NeedsOverworldRain:    det.NeedsOverworldRain,
		TurnUpsideDown:        det.TurnUpsideDown,
	}
	if id, ok := det.Item.ID(); ok {
		req.ItemID = &id
	}
	if id, ok := det.HeldItem.ID(); ok {
		req.HeldItemID = &id
	}
	if id, ok := det.Location.ID(); ok {
		req.LocationID = &id
	}
	if id, ok := det.KnownMove.ID(); ok {
		req.KnownMoveID = &id
	}
	if id, ok := det.PartySpecies.ID(); ok {
		req.PartySpeciesID = &id
	}
	if id, ok := det.TradeSpecies.ID(); ok {
		req.TradeSpeciesID = &id
	}
	return req, true
}

// processEvolutionChain fetches and parses one chain, writes its record row
// and requirement tuples, and hands the parse result to the graph post-pass.
func (p *Pipeline) processEvolutionChain(ctx context.Context, ref domain.ResourceRef) (any, error) {
	ec, err := fetchAs[pokeapi.EvolutionChain](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	chain, err := parseChain(ec)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindEvolutionChain, chain.ID, map[string]any{
		"baby_trigger_item_id": chain.BabyTriggerItem,
	}); err != nil {
		return nil, err
	}
	speciesIDs, err := p.repo.ExistingIDs(ctx, domain.KindSpecies)
	if err != nil {
		return nil, err
	}
	for _, req := range chain.requirements() {
		if !speciesIDs[req.EvolvedSpeciesID] {
			p.log.Warn("evolution requirement skipped, species missing",
				"chain", chain.ID, "species", req.EvolvedSpeciesID)
			continue
		}
		if err := p.repo.FindOrCreateEvolution(ctx, req); err != nil {
			return nil, err
		}
	}
	return chain, nil
}

// evolutionGraphPass resolves chain membership across all parsed chains and
// stamps species rows with their chain and evolves-from links.
//
// A species whose evolves-from parent sits in a different chain is absorbed
// into the parent's chain; a chain whose members are all claimed elsewhere
// is dropped. The lineage hints collected while seeding species do not
// outlive this pass.
func (p *Pipeline) evolutionGraphPass(ctx context.Context, results []any) error {
	defer p.run.clearLineage()

	evoFrom := p.run.lineage()

	// First claim wins when two chains list the same species.
	chainOf := make(map[int]int)
	for _, r := range results {
		chain := r.(*parsedChain)
		for _, id := range chain.members() {
			if _, claimed := chainOf[id]; !claimed {
				chainOf[id] = chain.ID
			}
		}
	}

	// Species payloads carry their own chain reference; it fills in for
	// chains whose resource failed to fetch this run.
	for speciesID, chainID := range p.run.chainHints() {
		if _, claimed := chainOf[speciesID]; !claimed {
			chainOf[speciesID] = chainID
		}
	}

	// Absorb children into the parent's chain when the two disagree.
	for speciesID, fromID := range evoFrom {
		childChain, hasChild := chainOf[speciesID]
		parentChain, hasParent := chainOf[fromID]
		if hasChild && hasParent && childChain != parentChain {
			p.log.Warn("species absorbed into parent chain",
				"species", speciesID, "from_chain", childChain, "into_chain", parentChain)
			chainOf[speciesID] = parentChain
		}
	}

	effective := make(map[int]int, len(results))
	for _, chainID := range chainOf {
		effective[chainID]++
	}
	for _, r := range results {
		chain := r.(*parsedChain)
		if effective[chain.ID] == 0 {
			p.log.Warn("chain fully absorbed, no members remain", "chain", chain.ID)
		}
	}

	speciesIDs, err := p.repo.ExistingIDs(ctx, domain.KindSpecies)
	if err != nil {
		return err
	}
	for speciesID, chainID := range chainOf {
		if !speciesIDs[speciesID] {
			continue
		}
		if err := p.repo.SetSpeciesChain(ctx, speciesID, chainID); err != nil {
			return fmt.Errorf("stamp chain %d on species %d: %w", chainID, speciesID, err)
		}
	}
	for speciesID, fromID := range evoFrom {
		if !speciesIDs[speciesID] || !speciesIDs[fromID] {
			continue
		}
		if err := p.repo.SetSpeciesEvolvesFrom(ctx, speciesID, fromID); err != nil {
			return fmt.Errorf("evolves-from %d->%d: %w", fromID, speciesID, err)
		}
	}
	return nil
}
