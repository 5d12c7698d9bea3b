package seeder

import (
	"context"

	"github.com/pokebase/backend/internal/adapter/provider/pokeapi"
	"github.com/pokebase/backend/internal/domain"
)

func (p *Pipeline) processEncounterMethod(ctx context.Context, ref domain.ResourceRef) (any, error) {
	em, err := fetchAs[pokeapi.EncounterMethod](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindEncounterMethod, em.ID, map[string]any{
		"name":       em.Name,
		"sort_order": em.Order,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindEncounterMethodName, em.ID, nameRows(em.Names)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processEncounterCondition(ctx context.Context, ref domain.ResourceRef) (any, error) {
	ec, err := fetchAs[pokeapi.EncounterCondition](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindEncounterCondition, ec.ID, map[string]any{
		"name": ec.Name,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindEncounterConditionName, ec.ID, nameRows(ec.Names)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processEncounterConditionValue(ctx context.Context, ref domain.ResourceRef) (any, error) {
	ecv, err := fetchAs[pokeapi.EncounterConditionValue](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	condID, err := p.mustFK(ctx, domain.KindEncounterCondition, ecv.Condition)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindEncounterConditionValue, ecv.ID, map[string]any{
		"name":                   ecv.Name,
		"encounter_condition_id": condID,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindEncounterConditionValueName, ecv.ID, nameRows(ecv.Names)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processLocation(ctx context.Context, ref domain.ResourceRef) (any, error) {
	loc, err := fetchAs[pokeapi.Location](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	regionID, err := p.fk(ctx, domain.KindRegion, loc.Region)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindLocation, loc.ID, map[string]any{
		"name":      loc.Name,
		"region_id": regionID,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindLocationName, loc.ID, nameRows(loc.Names)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processLocationArea(ctx context.Context, ref domain.ResourceRef) (any, error) {
	area, err := fetchAs[pokeapi.LocationArea](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	locID, err := p.fk(ctx, domain.KindLocation, area.Location)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindLocationArea, area.ID, map[string]any{
		"name":        area.Name,
		"game_index":  area.GameIndex,
		"location_id": locID,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindLocationAreaName, area.ID, nameRows(area.Names)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processEvolutionTrigger(ctx context.Context, ref domain.ResourceRef) (any, error) {
	tr, err := fetchAs[pokeapi.EvolutionTrigger](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindEvolutionTrigger, tr.ID, map[string]any{
		"name": tr.Name,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindEvolutionTriggerName, tr.ID, nameRows(tr.Names)); err != nil {
		return nil, err
	}
	return nil, nil
}
