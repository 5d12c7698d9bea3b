package seeder

import (
	"context"

	"github.com/pokebase/backend/internal/adapter/provider/pokeapi"
	"github.com/pokebase/backend/internal/domain"
)

func (p *Pipeline) processAbility(ctx context.Context, ref domain.ResourceRef) (any, error) {
	ab, err := fetchAs[pokeapi.Ability](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	genID, err := p.fk(ctx, domain.KindGeneration, ab.Generation)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindAbility, ab.ID, map[string]any{
		"name":           ab.Name,
		"is_main_series": ab.IsMainSeries,
		"generation_id":  genID,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindAbilityName, ab.ID, nameRows(ab.Names)); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindAbilityEffectText, ab.ID, verboseEffectRows(ab.EffectEntries)); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindAbilityFlavorText, ab.ID, groupFlavorRows(ab.FlavorTextEntries)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processPokemonColor(ctx context.Context, ref domain.ResourceRef) (any, error) {
	c, err := fetchAs[pokeapi.PokemonColor](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindPokemonColor, c.ID, map[string]any{"name": c.Name}); err != nil {
		return nil, err
	}
	return nil, p.repo.AddJoinedData(ctx, domain.KindPokemonColorName, c.ID, nameRows(c.Names))
}

func (p *Pipeline) processPokemonShape(ctx context.Context, ref domain.ResourceRef) (any, error) {
	s, err := fetchAs[pokeapi.PokemonShape](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindPokemonShape, s.ID, map[string]any{"name": s.Name}); err != nil {
		return nil, err
	}
	return nil, p.repo.AddJoinedData(ctx, domain.KindPokemonShapeName, s.ID, nameRows(s.Names))
}

func (p *Pipeline) processPokemonHabitat(ctx context.Context, ref domain.ResourceRef) (any, error) {
	h, err := fetchAs[pokeapi.PokemonHabitat](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindPokemonHabitat, h.ID, map[string]any{"name": h.Name}); err != nil {
		return nil, err
	}
	return nil, p.repo.AddJoinedData(ctx, domain.KindPokemonHabitatName, h.ID, nameRows(h.Names))
}

// speciesResult carries per-species data consumed by the dex-number
// post-pass after the whole category has been written.
type speciesResult struct {
	ID  int
	Dex []pokeapi.DexEntry
}

func (p *Pipeline) processSpecies(ctx context.Context, ref domain.ResourceRef) (any, error) {
	sp, err := fetchAs[pokeapi.Species](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	growthID, err := p.fk(ctx, domain.KindGrowthRate, sp.GrowthRate)
	if err != nil {
		return nil, err
	}
	colorID, err := p.fk(ctx, domain.KindPokemonColor, sp.Color)
	if err != nil {
		return nil, err
	}
	shapeID, err := p.fk(ctx, domain.KindPokemonShape, sp.Shape)
	if err != nil {
		return nil, err
	}
	habitatID, err := p.fk(ctx, domain.KindPokemonHabitat, sp.Habitat)
	if err != nil {
		return nil, err
	}
	genID, err := p.fk(ctx, domain.KindGeneration, sp.Generation)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindSpecies, sp.ID, map[string]any{
		"name":                   sp.Name,
		"sort_order":             sp.Order,
		"gender_rate":            sp.GenderRate,
		"capture_rate":           sp.CaptureRate,
		"base_happiness":         sp.BaseHappiness,
		"is_baby":                sp.IsBaby,
		"is_legendary":           sp.IsLegendary,
		"is_mythical":            sp.IsMythical,
		"hatch_counter":          sp.HatchCounter,
		"has_gender_differences": sp.HasGenderDifferences,
		"forms_switchable":       sp.FormsSwitchable,
		"growth_rate_id":         growthID,
		"pokemon_color_id":       colorID,
		"pokemon_shape_id":       shapeID,
		"pokemon_habitat_id":     habitatID,
		"generation_id":          genID,
	}); err != nil {
		return nil, err
	}

	names := make([]domain.JoinRow, 0, len(sp.Names))
	for _, n := range sp.Names {
		langID, ok := n.Language.ID()
		if !ok {
			continue
		}
		names = append(names, domain.JoinRow{
			SecondaryID: langID,
			Fields:      map[string]any{"name": n.Name, "genus": n.Genus},
		})
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindSpeciesName, sp.ID, names); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindSpeciesFlavorText, sp.ID, flavorRows(sp.FlavorTextEntries)); err != nil {
		return nil, err
	}
	if _, err := p.repo.UpsertJoin(ctx, domain.KindSpeciesEggGroup, sp.ID, sp.EggGroups); err != nil {
		return nil, err
	}

	// Lineage hints live only until the evolution post-pass consumes them.
	if fromID, ok := sp.EvolvesFromSpecies.ID(); ok {
		p.run.recordEvolvesFrom(sp.ID, fromID)
	}
	if chainID, ok := sp.EvolutionChain.ID(); ok {
		p.run.recordChainHint(sp.ID, chainID)
	}

	return &speciesResult{ID: sp.ID, Dex: sp.PokedexNumbers}, nil
}

// speciesGap reports whether an existing species row lacks any of its
// sub-records, in which case the species is reprocessed to fill the gap.
func (p *Pipeline) speciesGap(ctx context.Context, id int) (bool, error) {
	return p.missingRelated(ctx, id,
		domain.KindSpeciesName,
		domain.KindSpeciesFlavorText,
		domain.KindSpeciesEggGroup,
		domain.KindSpeciesDexNumber,
	)
}

// genderGap forces a gender back through the post-pass when its species
// associations never made it in.
func (p *Pipeline) genderGap(ctx context.Context, id int) (bool, error) {
	return p.missingRelated(ctx, id, domain.KindGenderSpecies)
}

// dexNumbersPass writes pokedex entry numbers once every species row exists.
func (p *Pipeline) dexNumbersPass(ctx context.Context, results []any) error {
	for _, r := range results {
		sp := r.(*speciesResult)
		rows := make([]domain.JoinRow, 0, len(sp.Dex))
		for _, e := range sp.Dex {
			dexID, ok := e.Pokedex.ID()
			if !ok {
				continue
			}
			rows = append(rows, domain.JoinRow{
				SecondaryID: dexID,
				Fields:      map[string]any{"pokedex_number": e.EntryNumber},
			})
		}
		if err := p.repo.AddJoinedData(ctx, domain.KindSpeciesDexNumber, sp.ID, rows); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) processPokemon(ctx context.Context, ref domain.ResourceRef) (any, error) {
	pk, err := fetchAs[pokeapi.Pokemon](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	speciesID, err := p.mustFK(ctx, domain.KindSpecies, pk.Species)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindPokemon, pk.ID, map[string]any{
		"name":               pk.Name,
		"pokemon_species_id": speciesID,
		"height":             pk.Height,
		"weight":             pk.Weight,
		"base_experience":    pk.BaseExperience,
		"sort_order":         pk.Order,
		"is_default":         pk.IsDefault,
	}); err != nil {
		return nil, err
	}

	types := make([]domain.JoinRow, 0, len(pk.Types))
	for _, t := range pk.Types {
		typeID, ok := t.Type.ID()
		if !ok {
			continue
		}
		types = append(types, domain.JoinRow{
			SecondaryID: typeID,
			Fields:      map[string]any{"slot": t.Slot},
		})
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindPokemonType, pk.ID, types); err != nil {
		return nil, err
	}

	stats := make([]domain.JoinRow, 0, len(pk.Stats))
	for _, s := range pk.Stats {
		statID, ok := s.Stat.ID()
		if !ok {
			continue
		}
		stats = append(stats, domain.JoinRow{
			SecondaryID: statID,
			Fields:      map[string]any{"base_stat": s.BaseStat, "effort": s.Effort},
		})
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindPokemonStat, pk.ID, stats); err != nil {
		return nil, err
	}

	abilities := make([]domain.JoinRow, 0, len(pk.Abilities))
	for _, a := range pk.Abilities {
		abilityID, ok := a.Ability.ID()
		if !ok {
			continue
		}
		abilities = append(abilities, domain.JoinRow{
			SecondaryID: abilityID,
			Fields:      map[string]any{"is_hidden": a.IsHidden, "slot": a.Slot},
		})
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindPokemonAbility, pk.ID, abilities); err != nil {
		return nil, err
	}

	moves := make([]domain.ResourceRef, 0, len(pk.Moves))
	for _, m := range pk.Moves {
		moves = append(moves, m.Move)
	}
	if _, err := p.repo.UpsertJoin(ctx, domain.KindPokemonMove, pk.ID, moves); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processPokemonForm(ctx context.Context, ref domain.ResourceRef) (any, error) {
	f, err := fetchAs[pokeapi.PokemonForm](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	pokemonID, err := p.mustFK(ctx, domain.KindPokemon, f.Pokemon)
	if err != nil {
		return nil, err
	}
	vgID, err := p.fk(ctx, domain.KindVersionGroup, f.VersionGroup)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindPokemonForm, f.ID, map[string]any{
		"name":             f.Name,
		"form_name":        f.FormName,
		"sort_order":       f.Order,
		"form_sort_order":  f.FormOrder,
		"is_default":       f.IsDefault,
		"is_battle_only":   f.IsBattleOnly,
		"is_mega":          f.IsMega,
		"pokemon_id":       pokemonID,
		"version_group_id": vgID,
	}); err != nil {
		return nil, err
	}
	return nil, p.repo.AddJoinedData(ctx, domain.KindPokemonFormName, f.ID, formNameRows(f))
}

// formNameRows merges the form-specific and full display names per language;
// default forms usually carry neither.
func formNameRows(f *pokeapi.PokemonForm) []domain.JoinRow {
	byLang := make(map[int]map[string]any)
	for _, n := range f.FormNames {
		langID, ok := n.Language.ID()
		if !ok {
			continue
		}
		byLang[langID] = map[string]any{"form_name": n.Name}
	}
	for _, n := range f.Names {
		langID, ok := n.Language.ID()
		if !ok {
			continue
		}
		fields, seen := byLang[langID]
		if !seen {
			fields = map[string]any{}
			byLang[langID] = fields
		}
		fields["pokemon_name"] = n.Name
	}
	rows := make([]domain.JoinRow, 0, len(byLang))
	for langID, fields := range byLang {
		rows = append(rows, domain.JoinRow{SecondaryID: langID, Fields: fields})
	}
	return rows
}

func (p *Pipeline) processGender(ctx context.Context, ref domain.ResourceRef) (any, error) {
	g, err := fetchAs[pokeapi.Gender](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindGender, g.ID, map[string]any{
		"name": g.Name,
	}); err != nil {
		return nil, err
	}
	return g, nil
}

// genderSpeciesPass links genders to species once both sides exist.
func (p *Pipeline) genderSpeciesPass(ctx context.Context, results []any) error {
	for _, r := range results {
		g := r.(*pokeapi.Gender)
		rows := make([]domain.JoinRow, 0, len(g.PokemonSpeciesDetails))
		for _, d := range g.PokemonSpeciesDetails {
			speciesID, ok := d.PokemonSpecies.ID()
			if !ok {
				continue
			}
			rows = append(rows, domain.JoinRow{
				SecondaryID: speciesID,
				Fields:      map[string]any{"rate": d.Rate},
			})
		}
		if err := p.repo.AddJoinedData(ctx, domain.KindGenderSpecies, g.ID, rows); err != nil {
			return err
		}
	}
	return nil
}
