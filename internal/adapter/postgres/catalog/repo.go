// Package catalog implements the relational store access for the
// seeding pipeline: a generic create-or-update engine keyed by primary
// or composite natural key, plus the resumability oracle over existing
// primary keys. The schema itself is an external contract; the pipeline
// only ever inserts, updates, and selects keys.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/pokebase/backend/internal/adapter/postgres"
	"github.com/pokebase/backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo is the catalog store adapter. It keeps a per-run cache of
// existing primary-key sets; the memory governor purges it.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
	log  *slog.Logger

	mu  sync.Mutex
	ids map[domain.Kind]map[int]bool
}

// New creates a Repo.
func New(pool *pgxpool.Pool, txm *postgres.TxManager, logger *slog.Logger) *Repo {
	return &Repo{
		pool: pool,
		txm:  txm,
		log:  logger.With("adapter", "catalog"),
		ids:  make(map[domain.Kind]map[int]bool),
	}
}

// UpsertRecord creates or updates a row of a record kind by primary key.
// A non-positive id is a no-op. Safe to call repeatedly with the same
// input: existing rows are updated in place, never duplicated.
func (r *Repo) UpsertRecord(ctx context.Context, kind domain.Kind, id int, fields map[string]any) error {
	if id <= 0 {
		return nil
	}
	table, ok := kind.RecordTable()
	if !ok {
		return fmt.Errorf("upsert %s: %w: not a record kind", kind, domain.ErrValidation)
	}

	cols := sortedKeys(fields)
	builder := psql.Insert(table).Columns(append([]string{"id"}, cols...)...)

	vals := make([]any, 0, len(cols)+1)
	vals = append(vals, id)
	for _, c := range cols {
		vals = append(vals, fields[c])
	}
	builder = builder.Values(vals...).Suffix(conflictClause([]string{"id"}, cols))

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert %s: %w", kind, err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return mapError(err, kind, id)
	}

	r.mu.Lock()
	if set, ok := r.ids[kind]; ok {
		set[id] = true
	}
	r.mu.Unlock()
	return nil
}

// UpsertJoin inserts composite-key rows (primaryID, secondaryID) for
// each reference whose secondary entity already exists. References to
// entities not yet materialized are skipped with a warning — the
// pipeline never creates a dangling relationship. Returns the number
// of references skipped.
func (r *Repo) UpsertJoin(ctx context.Context, kind domain.Kind, primaryID int, refs []domain.ResourceRef) (int, error) {
	spec, ok := kind.JoinSpec()
	if !ok {
		return 0, fmt.Errorf("upsert join %s: %w: not a join kind", kind, domain.ErrValidation)
	}

	skipped := 0
	batch := &pgx.Batch{}
	for _, ref := range refs {
		secondaryID, ok := ref.ID()
		if !ok {
			skipped++
			continue
		}
		known, err := r.exists(ctx, spec.Secondary, secondaryID)
		if err != nil {
			return skipped, err
		}
		if !known {
			r.warnMissing(kind, spec.Secondary, primaryID, secondaryID)
			skipped++
			continue
		}
		query, args, err := buildJoinUpsert(spec, primaryID, secondaryID, nil)
		if err != nil {
			return skipped, err
		}
		batch.Queue(query, args...)
	}
	if err := r.sendBatch(ctx, batch); err != nil {
		return skipped, mapError(err, kind, primaryID)
	}
	return skipped, nil
}

// AddJoinedData fans localized or joined sub-records out across the
// secondary dimension: one composite-key row per element, carrying the
// element's payload columns. Rows whose secondary entity is missing, or
// whose payload fields are all absent, are skipped.
func (r *Repo) AddJoinedData(ctx context.Context, kind domain.Kind, primaryID int, rows []domain.JoinRow) error {
	spec, ok := kind.JoinSpec()
	if !ok {
		return fmt.Errorf("add joined data %s: %w: not a join kind", kind, domain.ErrValidation)
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		if row.SecondaryID <= 0 || allAbsent(row.Fields) {
			continue
		}
		known, err := r.exists(ctx, spec.Secondary, row.SecondaryID)
		if err != nil {
			return err
		}
		if !known {
			r.warnMissing(kind, spec.Secondary, primaryID, row.SecondaryID)
			continue
		}
		query, args, err := buildJoinUpsert(spec, primaryID, row.SecondaryID, row.Fields)
		if err != nil {
			return err
		}
		batch.Queue(query, args...)
	}
	if err := r.sendBatch(ctx, batch); err != nil {
		return mapError(err, kind, primaryID)
	}
	return nil
}

// buildJoinUpsert renders one composite-key upsert. Pure join rows (no
// payload) conflict to DO NOTHING; payload rows update in place.
func buildJoinUpsert(spec domain.JoinSpec, primaryID, secondaryID int, fields map[string]any) (string, []any, error) {
	cols := sortedKeys(fields)
	builder := psql.Insert(spec.Table).
		Columns(append([]string{spec.PrimaryCol, spec.SecondaryCol}, cols...)...)

	vals := make([]any, 0, len(cols)+2)
	vals = append(vals, primaryID, secondaryID)
	for _, c := range cols {
		vals = append(vals, fields[c])
	}
	builder = builder.Values(vals...).
		Suffix(conflictClause([]string{spec.PrimaryCol, spec.SecondaryCol}, cols))

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build join upsert %s: %w", spec.Table, err)
	}
	return query, args, nil
}

// sendBatch flushes queued upserts in one round trip.
func (r *Repo) sendBatch(ctx context.Context, batch *pgx.Batch) error {
	if batch.Len() == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)
	br := q.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return br.Close()
}

// ExistingIDs returns the set of already-materialized primary keys for
// a record kind. The set is cached for the run and kept current by
// UpsertRecord; the memory governor may purge it.
func (r *Repo) ExistingIDs(ctx context.Context, kind domain.Kind) (map[int]bool, error) {
	r.mu.Lock()
	if set, ok := r.ids[kind]; ok {
		r.mu.Unlock()
		return set, nil
	}
	r.mu.Unlock()

	table, ok := kind.RecordTable()
	if !ok {
		return nil, fmt.Errorf("existing ids %s: %w: not a record kind", kind, domain.ErrValidation)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, fmt.Sprintf(`SELECT id FROM %s`, table))
	if err != nil {
		return nil, fmt.Errorf("existing ids %s: %w", kind, err)
	}
	defer rows.Close()

	set := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan existing id %s: %w", kind, err)
		}
		set[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate existing ids %s: %w", kind, err)
	}

	r.mu.Lock()
	r.ids[kind] = set
	r.mu.Unlock()
	return set, nil
}

// HasRelated reports whether at least one row of the join kind exists
// for the given primary ID. Gap-filling processors use it to decide
// whether an existing primary row still needs its relationships.
func (r *Repo) HasRelated(ctx context.Context, kind domain.Kind, primaryID int) (bool, error) {
	spec, ok := kind.JoinSpec()
	if !ok {
		return false, fmt.Errorf("has related %s: %w: not a join kind", kind, domain.ErrValidation)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	var found bool
	err := q.QueryRow(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, spec.Table, spec.PrimaryCol),
		primaryID,
	).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("has related %s %d: %w", kind, primaryID, err)
	}
	return found, nil
}

// PurgeIDCache drops every cached primary-key set. Invoked by the
// memory governor; subsequent lookups reload from the store.
func (r *Repo) PurgeIDCache() {
	r.mu.Lock()
	r.ids = make(map[domain.Kind]map[int]bool)
	r.mu.Unlock()
}

// exists checks membership via the cached primary-key set.
func (r *Repo) exists(ctx context.Context, kind domain.Kind, id int) (bool, error) {
	set, err := r.ExistingIDs(ctx, kind)
	if err != nil {
		return false, err
	}
	return set[id], nil
}

func (r *Repo) warnMissing(kind, secondary domain.Kind, primaryID, secondaryID int) {
	r.log.Warn("skipping relationship to unmaterialized entity",
		slog.String("kind", string(kind)),
		slog.String("secondary", string(secondary)),
		slog.Int("primary_id", primaryID),
		slog.Int("secondary_id", secondaryID),
	)
}

// conflictClause renders the ON CONFLICT suffix for an upsert: a plain
// DO NOTHING when there is no payload to refresh, otherwise an update
// of every payload column from EXCLUDED.
func conflictClause(keyCols, payloadCols []string) string {
	target := keyCols[0]
	for _, c := range keyCols[1:] {
		target += ", " + c
	}
	if len(payloadCols) == 0 {
		return fmt.Sprintf("ON CONFLICT (%s) DO NOTHING", target)
	}
	set := ""
	for i, c := range payloadCols {
		if i > 0 {
			set += ", "
		}
		set += fmt.Sprintf("%s = EXCLUDED.%s", c, c)
	}
	return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s", target, set)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// allAbsent reports whether every payload value is nil or an empty
// string — such rows carry no data worth writing.
func allAbsent(fields map[string]any) bool {
	for _, v := range fields {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			if val != "" {
				return false
			}
		case *string:
			if val != nil && *val != "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}
