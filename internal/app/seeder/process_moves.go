package seeder

import (
	"context"

	"github.com/pokebase/backend/internal/adapter/provider/pokeapi"
	"github.com/pokebase/backend/internal/domain"
)

func (p *Pipeline) processMoveDamageClass(ctx context.Context, ref domain.ResourceRef) (any, error) {
	dc, err := fetchAs[pokeapi.MoveDamageClass](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindMoveDamageClass, dc.ID, map[string]any{
		"name": dc.Name,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindMoveDamageClassText, dc.ID, descriptionRows(dc.Descriptions)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processMoveTarget(ctx context.Context, ref domain.ResourceRef) (any, error) {
	mt, err := fetchAs[pokeapi.MoveTarget](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindMoveTarget, mt.ID, map[string]any{
		"name": mt.Name,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindMoveTargetText, mt.ID, descriptionRows(mt.Descriptions)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processMoveAilment(ctx context.Context, ref domain.ResourceRef) (any, error) {
	ma, err := fetchAs[pokeapi.MoveAilment](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindMoveAilment, ma.ID, map[string]any{
		"name": ma.Name,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindMoveAilmentName, ma.ID, nameRows(ma.Names)); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *Pipeline) processMoveCategory(ctx context.Context, ref domain.ResourceRef) (any, error) {
	mc, err := fetchAs[pokeapi.MoveCategory](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	return nil, p.repo.UpsertRecord(ctx, domain.KindMoveCategory, mc.ID, map[string]any{
		"name": mc.Name,
	})
}

func (p *Pipeline) processMove(ctx context.Context, ref domain.ResourceRef) (any, error) {
	mv, err := fetchAs[pokeapi.Move](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	typeID, err := p.fk(ctx, domain.KindType, mv.Type)
	if err != nil {
		return nil, err
	}
	dmgClassID, err := p.mustFK(ctx, domain.KindMoveDamageClass, mv.DamageClass)
	if err != nil {
		return nil, err
	}
	targetID, err := p.fk(ctx, domain.KindMoveTarget, mv.Target)
	if err != nil {
		return nil, err
	}
	genID, err := p.fk(ctx, domain.KindGeneration, mv.Generation)
	if err != nil {
		return nil, err
	}
	fields := map[string]any{
		"name":                 mv.Name,
		"accuracy":             mv.Accuracy,
		"effect_chance":        mv.EffectChance,
		"pp":                   mv.PP,
		"priority":             mv.Priority,
		"power":                mv.Power,
		"type_id":              typeID,
		"move_damage_class_id": dmgClassID,
		"move_target_id":       targetID,
		"generation_id":        genID,
	}
	if mv.Meta != nil {
		ailmentID, err := p.fk(ctx, domain.KindMoveAilment, mv.Meta.Ailment)
		if err != nil {
			return nil, err
		}
		categoryID, err := p.fk(ctx, domain.KindMoveCategory, mv.Meta.Category)
		if err != nil {
			return nil, err
		}
		fields["move_ailment_id"] = ailmentID
		fields["move_category_id"] = categoryID
		fields["min_hits"] = mv.Meta.MinHits
		fields["max_hits"] = mv.Meta.MaxHits
		fields["min_turns"] = mv.Meta.MinTurns
		fields["max_turns"] = mv.Meta.MaxTurns
		fields["drain"] = mv.Meta.Drain
		fields["healing"] = mv.Meta.Healing
		fields["crit_rate"] = mv.Meta.CritRate
		fields["ailment_chance"] = mv.Meta.AilmentChance
		fields["flinch_chance"] = mv.Meta.FlinchChance
		fields["stat_chance"] = mv.Meta.StatChance
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindMove, mv.ID, fields); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindMoveName, mv.ID, nameRows(mv.Names)); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindMoveEffectText, mv.ID, verboseEffectRows(mv.EffectEntries)); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindMoveFlavorText, mv.ID, groupFlavorRows(mv.FlavorTextEntries)); err != nil {
		return nil, err
	}
	return nil, nil
}
