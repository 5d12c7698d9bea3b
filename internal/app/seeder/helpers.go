package seeder

import (
	"context"
	"fmt"

	"github.com/pokebase/backend/internal/adapter/provider/pokeapi"
	"github.com/pokebase/backend/internal/domain"
)

// fk resolves an optional reference to a foreign-key value. Returns nil when
// the reference is empty or the target row was never seeded, so the record
// column stays NULL instead of breaking the insert.
func (p *Pipeline) fk(ctx context.Context, kind domain.Kind, ref domain.ResourceRef) (*int, error) {
	id, ok := ref.ID()
	if !ok {
		return nil, nil
	}
	existing, err := p.repo.ExistingIDs(ctx, kind)
	if err != nil {
		return nil, err
	}
	if !existing[id] {
		p.log.Debug("optional reference target missing, nulling", "kind", kind, "id", id)
		return nil, nil
	}
	return &id, nil
}

// mustFK resolves a required reference; a missing target fails the item.
func (p *Pipeline) mustFK(ctx context.Context, kind domain.Kind, ref domain.ResourceRef) (int, error) {
	id, ok := ref.ID()
	if !ok {
		return 0, fmt.Errorf("required %s reference absent (%q)", kind, ref.URL)
	}
	existing, err := p.repo.ExistingIDs(ctx, kind)
	if err != nil {
		return 0, err
	}
	if !existing[id] {
		return 0, fmt.Errorf("required %s %d not seeded yet", kind, id)
	}
	return id, nil
}

// missingRelated reports whether any of the given join kinds lacks rows for
// the primary ID. Gap checks use it so a re-run pulls an existing record back
// through processing when a prior run died before its dependent writes.
func (p *Pipeline) missingRelated(ctx context.Context, id int, kinds ...domain.Kind) (bool, error) {
	for _, kind := range kinds {
		has, err := p.repo.HasRelated(ctx, kind, id)
		if err != nil {
			return false, err
		}
		if !has {
			return true, nil
		}
	}
	return false, nil
}

// Localized sub-record builders. Each returns join rows keyed by language;
// entries with an unparsable language reference are dropped.

func nameRows(names []pokeapi.Name) []domain.JoinRow {
	rows := make([]domain.JoinRow, 0, len(names))
	for _, n := range names {
		langID, ok := n.Language.ID()
		if !ok {
			continue
		}
		rows = append(rows, domain.JoinRow{
			SecondaryID: langID,
			Fields:      map[string]any{"name": n.Name},
		})
	}
	return rows
}

func descriptionRows(descs []pokeapi.Description) []domain.JoinRow {
	rows := make([]domain.JoinRow, 0, len(descs))
	for _, d := range descs {
		langID, ok := d.Language.ID()
		if !ok {
			continue
		}
		rows = append(rows, domain.JoinRow{
			SecondaryID: langID,
			Fields:      map[string]any{"description": d.Description},
		})
	}
	return rows
}

func effectRows(effects []pokeapi.Effect) []domain.JoinRow {
	rows := make([]domain.JoinRow, 0, len(effects))
	for _, e := range effects {
		langID, ok := e.Language.ID()
		if !ok {
			continue
		}
		rows = append(rows, domain.JoinRow{
			SecondaryID: langID,
			Fields:      map[string]any{"effect": e.Effect},
		})
	}
	return rows
}

func verboseEffectRows(effects []pokeapi.VerboseEffect) []domain.JoinRow {
	rows := make([]domain.JoinRow, 0, len(effects))
	for _, e := range effects {
		langID, ok := e.Language.ID()
		if !ok {
			continue
		}
		rows = append(rows, domain.JoinRow{
			SecondaryID: langID,
			Fields:      map[string]any{"effect": e.Effect, "short_effect": e.ShortEffect},
		})
	}
	return rows
}

// groupFlavorRows keeps the latest version-group entry per language; the
// version group id travels as a payload column.
func groupFlavorRows(entries []pokeapi.GroupFlavorText) []domain.JoinRow {
	rows := make([]domain.JoinRow, 0, len(entries))
	for _, e := range entries {
		langID, ok := e.Language.ID()
		if !ok {
			continue
		}
		fields := map[string]any{"flavor_text": e.Body()}
		if vgID, ok := e.VersionGroup.ID(); ok {
			fields["version_group_id"] = vgID
		}
		rows = append(rows, domain.JoinRow{SecondaryID: langID, Fields: fields})
	}
	return rows
}

func flavorRows(entries []pokeapi.FlavorText) []domain.JoinRow {
	rows := make([]domain.JoinRow, 0, len(entries))
	for _, e := range entries {
		langID, ok := e.Language.ID()
		if !ok {
			continue
		}
		fields := map[string]any{"flavor_text": e.FlavorText}
		if vID, ok := e.Version.ID(); ok {
			fields["version_id"] = vID
		}
		rows = append(rows, domain.JoinRow{SecondaryID: langID, Fields: fields})
	}
	return rows
}
