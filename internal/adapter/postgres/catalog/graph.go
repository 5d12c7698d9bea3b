package catalog

import (
	"context"
	"fmt"

	postgres "github.com/pokebase/backend/internal/adapter/postgres"
	"github.com/pokebase/backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Type-effectiveness matrix
// ---------------------------------------------------------------------------

// TypeIDs returns the primary keys of every type row.
func (r *Repo) TypeIDs(ctx context.Context) ([]int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, `SELECT id FROM types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("type ids: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan type id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// EfficacyPairs returns the set of (damage_type_id, target_type_id)
// pairs for which a relation already exists.
func (r *Repo) EfficacyPairs(ctx context.Context) (map[[2]int]bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, `SELECT damage_type_id, target_type_id FROM type_efficacy`)
	if err != nil {
		return nil, fmt.Errorf("efficacy pairs: %w", err)
	}
	defer rows.Close()

	pairs := make(map[[2]int]bool)
	for rows.Next() {
		var damage, target int
		if err := rows.Scan(&damage, &target); err != nil {
			return nil, fmt.Errorf("scan efficacy pair: %w", err)
		}
		pairs[[2]int{damage, target}] = true
	}
	return pairs, rows.Err()
}

// InsertEfficacy inserts one type-effectiveness relation. Existing
// relations are never overwritten — the matrix completer only fills
// gaps, and catalog-sourced factors must survive re-runs unchanged.
func (r *Repo) InsertEfficacy(ctx context.Context, damageTypeID, targetTypeID int, factor float64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	_, err := q.Exec(ctx,
		`INSERT INTO type_efficacy (damage_type_id, target_type_id, damage_factor)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (damage_type_id, target_type_id) DO NOTHING`,
		damageTypeID, targetTypeID, factor,
	)
	if err != nil {
		return mapError(err, domain.KindTypeEfficacy, damageTypeID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Evolution graph
// ---------------------------------------------------------------------------

// FindOrCreateEvolution inserts an evolution-requirement row unless an
// identical one exists. Identity is the full tuple of conditions, not
// just the trigger, so re-running a chain never duplicates requirements.
func (r *Repo) FindOrCreateEvolution(ctx context.Context, req domain.EvolutionRequirement) error {
	return r.txm.RunInTx(ctx, func(txCtx context.Context) error {
		q := postgres.QuerierFromCtx(txCtx, r.pool)

		var found bool
		err := q.QueryRow(txCtx,
			`SELECT EXISTS (
			   SELECT 1 FROM pokemon_evolution
			   WHERE evolved_species_id = $1
			     AND evolution_trigger_id = $2
			     AND trigger_item_id IS NOT DISTINCT FROM $3
			     AND held_item_id IS NOT DISTINCT FROM $4
			     AND location_id IS NOT DISTINCT FROM $5
			     AND known_move_id IS NOT DISTINCT FROM $6
			     AND party_species_id IS NOT DISTINCT FROM $7
			     AND trade_species_id IS NOT DISTINCT FROM $8
			     AND min_level IS NOT DISTINCT FROM $9
			     AND min_happiness IS NOT DISTINCT FROM $10
			     AND min_beauty IS NOT DISTINCT FROM $11
			     AND min_affection IS NOT DISTINCT FROM $12
			     AND gender_id IS NOT DISTINCT FROM $13
			     AND time_of_day = $14
			     AND relative_physical_stats IS NOT DISTINCT FROM $15
			     AND needs_overworld_rain = $16
			     AND turn_upside_down = $17
			 )`,
			req.EvolvedSpeciesID, req.TriggerID, req.ItemID, req.HeldItemID,
			req.LocationID, req.KnownMoveID, req.PartySpeciesID, req.TradeSpeciesID,
			req.MinLevel, req.MinHappiness, req.MinBeauty, req.MinAffection,
			req.GenderID, req.TimeOfDay, req.RelativePhysicalStats,
			req.NeedsOverworldRain, req.TurnUpsideDown,
		).Scan(&found)
		if err != nil {
			return fmt.Errorf("find evolution requirement: %w", err)
		}
		if found {
			return nil
		}

		_, err = q.Exec(txCtx,
			`INSERT INTO pokemon_evolution (
			   evolved_species_id, evolution_trigger_id, trigger_item_id, held_item_id,
			   location_id, known_move_id, party_species_id, trade_species_id,
			   min_level, min_happiness, min_beauty, min_affection,
			   gender_id, time_of_day, relative_physical_stats,
			   needs_overworld_rain, turn_upside_down
			 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
			req.EvolvedSpeciesID, req.TriggerID, req.ItemID, req.HeldItemID,
			req.LocationID, req.KnownMoveID, req.PartySpeciesID, req.TradeSpeciesID,
			req.MinLevel, req.MinHappiness, req.MinBeauty, req.MinAffection,
			req.GenderID, req.TimeOfDay, req.RelativePhysicalStats,
			req.NeedsOverworldRain, req.TurnUpsideDown,
		)
		if err != nil {
			return fmt.Errorf("insert evolution requirement: %w", err)
		}
		return nil
	})
}

// SetSpeciesChain stamps a species row with its owning evolution chain.
func (r *Repo) SetSpeciesChain(ctx context.Context, speciesID, chainID int) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	_, err := q.Exec(ctx,
		`UPDATE pokemon_species SET evolution_chain_id = $2 WHERE id = $1`,
		speciesID, chainID,
	)
	if err != nil {
		return mapError(err, domain.KindSpecies, speciesID)
	}
	return nil
}

// SetSpeciesEvolvesFrom sets the evolves-from back-reference. Callers
// apply it only once both endpoints are guaranteed to exist.
func (r *Repo) SetSpeciesEvolvesFrom(ctx context.Context, speciesID, fromSpeciesID int) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	_, err := q.Exec(ctx,
		`UPDATE pokemon_species SET evolves_from_species_id = $2 WHERE id = $1`,
		speciesID, fromSpeciesID,
	)
	if err != nil {
		return mapError(err, domain.KindSpecies, speciesID)
	}
	return nil
}
