package seeder

import (
	"context"
	"fmt"

	"github.com/pokebase/backend/internal/adapter/provider/pokeapi"
	"github.com/pokebase/backend/internal/domain"
)

// Damage factors as the upstream damage_relations lists express them.
const (
	factorNone    = 0.0
	factorHalf    = 0.5
	factorNeutral = 1.0
	factorDouble  = 2.0
)

func (p *Pipeline) processType(ctx context.Context, ref domain.ResourceRef) (any, error) {
	t, err := fetchAs[pokeapi.Type](ctx, p.client, ref.URL)
	if err != nil {
		return nil, err
	}
	genID, err := p.fk(ctx, domain.KindGeneration, t.Generation)
	if err != nil {
		return nil, err
	}
	dmgClassID, err := p.fk(ctx, domain.KindMoveDamageClass, t.MoveDamageClass)
	if err != nil {
		return nil, err
	}
	if err := p.repo.UpsertRecord(ctx, domain.KindType, t.ID, map[string]any{
		"name":                 t.Name,
		"generation_id":        genID,
		"move_damage_class_id": dmgClassID,
	}); err != nil {
		return nil, err
	}
	if err := p.repo.AddJoinedData(ctx, domain.KindTypeName, t.ID, nameRows(t.Names)); err != nil {
		return nil, err
	}
	return t, nil
}

// efficacyPass writes the non-neutral factors each type declares, in both
// directions, then fills every remaining (damage, target) pair with the
// neutral factor so the matrix is complete over N types. Existing pairs are
// never overwritten.
func (p *Pipeline) efficacyPass(ctx context.Context, results []any) error {
	for _, r := range results {
		t := r.(*pokeapi.Type)
		rel := t.DamageRelations
		outgoing := []struct {
			refs   []domain.ResourceRef
			factor float64
		}{
			{rel.NoDamageTo, factorNone},
			{rel.HalfDamageTo, factorHalf},
			{rel.DoubleDamageTo, factorDouble},
		}
		for _, group := range outgoing {
			for _, target := range group.refs {
				targetID, ok := target.ID()
				if !ok {
					continue
				}
				if err := p.repo.InsertEfficacy(ctx, t.ID, targetID, group.factor); err != nil {
					return fmt.Errorf("efficacy %d->%d: %w", t.ID, targetID, err)
				}
			}
		}
		incoming := []struct {
			refs   []domain.ResourceRef
			factor float64
		}{
			{rel.NoDamageFrom, factorNone},
			{rel.HalfDamageFrom, factorHalf},
			{rel.DoubleDamageFrom, factorDouble},
		}
		for _, group := range incoming {
			for _, attacker := range group.refs {
				attackerID, ok := attacker.ID()
				if !ok {
					continue
				}
				if err := p.repo.InsertEfficacy(ctx, attackerID, t.ID, group.factor); err != nil {
					return fmt.Errorf("efficacy %d->%d: %w", attackerID, t.ID, err)
				}
			}
		}
	}
	return p.completeMatrix(ctx)
}

func (p *Pipeline) completeMatrix(ctx context.Context) error {
	ids, err := p.repo.TypeIDs(ctx)
	if err != nil {
		return fmt.Errorf("type ids: %w", err)
	}
	present, err := p.repo.EfficacyPairs(ctx)
	if err != nil {
		return fmt.Errorf("efficacy pairs: %w", err)
	}
	filled := 0
	for _, dmg := range ids {
		for _, tgt := range ids {
			if present[[2]int{dmg, tgt}] {
				continue
			}
			if err := p.repo.InsertEfficacy(ctx, dmg, tgt, factorNeutral); err != nil {
				return fmt.Errorf("efficacy %d->%d: %w", dmg, tgt, err)
			}
			filled++
		}
	}
	p.log.Info("type efficacy matrix completed",
		"types", len(ids), "declared", len(present), "filled_neutral", filled)
	return nil
}
