package seeder

import (
	"context"

	"github.com/pokebase/backend/internal/adapter/provider/pokeapi"
	"github.com/pokebase/backend/internal/domain"
)

// Processors for the reference-data categories everything else hangs off:
// languages, game structure (regions, generations, versions), stats and
// natures.

func (p *Pipeline) processLanguage(ctx context.Context, ref domain.ResourceRef) (any, error) {
	lang, err := fetchAs[pokeapi.Language](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{
		"name":     lang.Name,
		"official": lang.Official,
		"iso639":   lang.ISO639,
		"iso3166":  lang.ISO3166,
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindLanguage, lang.ID, fields); err != nil {
		return nil, err
	}
	// Language names reference languages themselves, so they can only be
	// written once the full language set exists. Collected for the post-pass.
	return lang, nil
}

// languageGap forces a language back through the post-pass when its
// localized names were never written.
func (p *Pipeline) languageGap(ctx context.Context, id int) (bool, error) {
	return p.missingRelated(ctx, id, domain.KindLanguageName)
}

func (p *Pipeline) languageNamesPass(ctx context.Context, results []any) error {
	for _, r := range results {
		lang := r.(*pokeapi.Language)
		if err := p.repo.AddJoinedData(ctx, domain.KindLanguageName, lang.ID, nameRows(lang.Names)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) processRegion(ctx context.Context, ref domain.ResourceRef) (any, error) {
	region, err := fetchAs[pokeapi.Region](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindRegion, region.ID, map[string]any{
		"name": region.Name,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindRegionName, region.ID, nameRows(region.Names)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processGeneration(ctx context.Context, ref domain.ResourceRef) (any, error) {
	gen, err := fetchAs[pokeapi.Generation](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	mainRegion, err := p.fk(ctx, domain.KindRegion, gen.MainRegion)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindGeneration, gen.ID, map[string]any{
		"name":           gen.Name,
		"main_region_id": mainRegion,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindGenerationName, gen.ID, nameRows(gen.Names)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processVersionGroup(ctx context.Context, ref domain.ResourceRef) (any, error) {
	vg, err := fetchAs[pokeapi.VersionGroup](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	genID, err := p.fk(ctx, domain.KindGeneration, vg.Generation)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindVersionGroup, vg.ID, map[string]any{
		"name":          vg.Name,
		"sort_order":    vg.Order,
		"generation_id": genID,
	}); err != nil {
		return nil, err
	}
	if _, err := p.repo.UpsertJoin(ctx, domain.KindVersionGroupRegion, vg.ID, vg.Regions); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processVersion(ctx context.Context, ref domain.ResourceRef) (any, error) {
	v, err := fetchAs[pokeapi.Version](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	vgID, err := p.fk(ctx, domain.KindVersionGroup, v.VersionGroup)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindVersion, v.ID, map[string]any{
		"name":             v.Name,
		"version_group_id": vgID,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindVersionName, v.ID, nameRows(v.Names)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processStat(ctx context.Context, ref domain.ResourceRef) (any, error) {
	st, err := fetchAs[pokeapi.Stat](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	dmgClass, err := p.fk(ctx, domain.KindMoveDamageClass, st.MoveDamageClass)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindStat, st.ID, map[string]any{
		"name":                 st.Name,
		"game_index":           st.GameIndex,
		"is_battle_only":       st.IsBattleOnly,
		"move_damage_class_id": dmgClass,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindStatName, st.ID, nameRows(st.Names)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processCharacteristic(ctx context.Context, ref domain.ResourceRef) (any, error) {
	ch, err := fetchAs[pokeapi.Characteristic](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	statID, err := p.mustFK(ctx, domain.KindStat, ch.HighestStat)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindCharacteristic, ch.ID, map[string]any{
		"gene_modulo":     ch.GeneModulo,
		"highest_stat_id": statID,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindCharacteristicText, ch.ID, descriptionRows(ch.Descriptions)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processNature(ctx context.Context, ref domain.ResourceRef) (any, error) {
	nat, err := fetchAs[pokeapi.Nature](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	decStat, err := p.fk(ctx, domain.KindStat, nat.DecreasedStat)
	if err != nil {
		return nil, err
	}
	incStat, err := p.fk(ctx, domain.KindStat, nat.IncreasedStat)
	if err != nil {
		return nil, err
	}
	hates, err := p.fk(ctx, domain.KindBerryFlavor, nat.HatesFlavor)
	if err != nil {
		return nil, err
	}
	likes, err := p.fk(ctx, domain.KindBerryFlavor, nat.LikesFlavor)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindNature, nat.ID, map[string]any{
		"name":              nat.Name,
		"decreased_stat_id": decStat,
		"increased_stat_id": incStat,
		"hates_flavor_id":   hates,
		"likes_flavor_id":   likes,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindNatureName, nat.ID, nameRows(nat.Names)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processGrowthRate(ctx context.Context, ref domain.ResourceRef) (any, error) {
	gr, err := fetchAs[pokeapi.GrowthRate](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindGrowthRate, gr.ID, map[string]any{
		"name":    gr.Name,
		"formula": gr.Formula,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindGrowthRateText, gr.ID, descriptionRows(gr.Descriptions)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processEggGroup(ctx context.Context, ref domain.ResourceRef) (any, error) {
	eg, err := fetchAs[pokeapi.EggGroup](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindEggGroup, eg.ID, map[string]any{
		"name": eg.Name,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindEggGroupName, eg.ID, nameRows(eg.Names)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processPokedex(ctx context.Context, ref domain.ResourceRef) (any, error) {
	dex, err := fetchAs[pokeapi.Pokedex](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	regionID, err := p.fk(ctx, domain.KindRegion, dex.Region)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindPokedex, dex.ID, map[string]any{
		"name":           dex.Name,
		"is_main_series": dex.IsMainSeries,
		"region_id":      regionID,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindPokedexName, dex.ID, nameRows(dex.Names)); err != nil {
		return nil, err
	}
	if _, err := p.repo.UpsertJoin(ctx, domain.KindPokedexVersionGroup, dex.ID, dex.VersionGroups); err != nil {
		return nil, err
	}
	return nil, nil
}
