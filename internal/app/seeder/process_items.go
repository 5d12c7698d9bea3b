package seeder

import (
	"context"

	"github.com/pokebase/backend/internal/adapter/provider/pokeapi"
	"github.com/pokebase/backend/internal/domain"
)

func (p *Pipeline) processItemAttribute(ctx context.Context, ref domain.ResourceRef) (any, error) {
	attr, err := fetchAs[pokeapi.ItemAttribute](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindItemAttribute, attr.ID, map[string]any{
		"name": attr.Name,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindItemAttributeName, attr.ID, nameRows(attr.Names)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processItemCategory(ctx context.Context, ref domain.ResourceRef) (any, error) {
	cat, err := fetchAs[pokeapi.ItemCategory](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindItemCategory, cat.ID, map[string]any{
		"name":   cat.Name,
		"pocket": cat.Pocket.Name,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindItemCategoryName, cat.ID, nameRows(cat.Names)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processItemFlingEffect(ctx context.Context, ref domain.ResourceRef) (any, error) {
	fe, err := fetchAs[pokeapi.ItemFlingEffect](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindItemFlingEffect, fe.ID, map[string]any{
		"name": fe.Name,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindItemFlingEffectText, fe.ID, effectRows(fe.EffectEntries)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processItem(ctx context.Context, ref domain.ResourceRef) (any, error) {
	item, err := fetchAs[pokeapi.Item](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	categoryID, err := p.fk(ctx, domain.KindItemCategory, item.Category)
	if err != nil {
		return nil, err
	}
	flingID, err := p.fk(ctx, domain.KindItemFlingEffect, item.FlingEffect)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindItem, item.ID, map[string]any{
		"name":                 item.Name,
		"cost":                 item.Cost,
		"fling_power":          item.FlingPower,
		"item_category_id":     categoryID,
		"item_fling_effect_id": flingID,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindItemName, item.ID, nameRows(item.Names)); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindItemEffectText, item.ID, verboseEffectRows(item.EffectEntries)); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindItemFlavorText, item.ID, groupFlavorRows(item.FlavorTextEntries)); err != nil {
		return nil, err
	}
	if _, err := p.repo.UpsertJoin(ctx, domain.KindItemAttributeMap, item.ID, item.Attributes); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processMachine(ctx context.Context, ref domain.ResourceRef) (any, error) {
	m, err := fetchAs[pokeapi.Machine](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	moveID, err := p.mustFK(ctx, domain.KindMove, m.Move)
	if err != nil {
		return nil, err
	}
	itemID, err := p.fk(ctx, domain.KindItem, m.Item)
	if err != nil {
		return nil, err
	}
	vgID, err := p.fk(ctx, domain.KindVersionGroup, m.VersionGroup)
	if err != nil {
		return nil, err
	}
	return nil, p.repo.UpsertRecord(ctx, domain.KindMachine, m.ID, map[string]any{
		"move_id":          moveID,
		"item_id":          itemID,
		"version_group_id": vgID,
	})
}

func (p *Pipeline) processBerryFirmness(ctx context.Context, ref domain.ResourceRef) (any, error) {
	bf, err := fetchAs[pokeapi.BerryFirmness](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindBerryFirmness, bf.ID, map[string]any{
		"name": bf.Name,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindBerryFirmnessName, bf.ID, nameRows(bf.Names)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processBerryFlavor(ctx context.Context, ref domain.ResourceRef) (any, error) {
	fl, err := fetchAs[pokeapi.BerryFlavor](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindBerryFlavor, fl.ID, map[string]any{
		"name": fl.Name,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindBerryFlavorName, fl.ID, nameRows(fl.Names)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processBerry(ctx context.Context, ref domain.ResourceRef) (any, error) {
	b, err := fetchAs[pokeapi.Berry](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	firmnessID, err := p.fk(ctx, domain.KindBerryFirmness, b.Firmness)
	if err != nil {
		return nil, err
	}
	itemID, err := p.fk(ctx, domain.KindItem, b.Item)
	if err != nil {
		return nil, err
	}
	giftType, err := p.fk(ctx, domain.KindType, b.NaturalGiftType)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindBerry, b.ID, map[string]any{
		"name":                 b.Name,
		"growth_time":          b.GrowthTime,
		"max_harvest":          b.MaxHarvest,
		"natural_gift_power":   b.NaturalGiftPower,
		"size":                 b.Size,
		"smoothness":           b.Smoothness,
		"soil_dryness":         b.SoilDryness,
		"berry_firmness_id":    firmnessID,
		"item_id":              itemID,
		"natural_gift_type_id": giftType,
	}); err != nil {
		return nil, err
	}
	potencies := make([]domain.JoinRow, 0, len(b.Flavors))
	for _, f := range b.Flavors {
		flavorID, ok := f.Flavor.ID()
		if !ok {
			continue
		}
		potencies = append(potencies, domain.JoinRow{
			SecondaryID: flavorID,
			Fields:      map[string]any{"potency": f.Potency},
		})
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindBerryFlavorMap, b.ID, potencies); err != nil {
		return nil, err
	}
	return nil, nil
}
