// Package sqlite implements a local, file-backed registry. It serves
// development and offline runs where the hosted registry is unavailable, and
// is the target of `brandmap seed`, which loads member seed data into it.
// The driver is modernc.org/sqlite, a pure Go SQLite implementation, so no
// cgo toolchain is needed.
package sqlite

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/brandmap/brandmap/pkg/errors"
	"github.com/brandmap/brandmap/pkg/normalize"
	"github.com/brandmap/brandmap/pkg/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS entities (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	trade_name TEXT NOT NULL DEFAULT '',
	website    TEXT NOT NULL DEFAULT '',
	active     INTEGER NOT NULL DEFAULT 1
);
CREATE TABLE IF NOT EXISTS media (
	id            TEXT PRIMARY KEY,
	entity_id     TEXT NOT NULL REFERENCES entities(id),
	kind          TEXT NOT NULL,
	file_url      TEXT NOT NULL,
	is_primary    INTEGER NOT NULL DEFAULT 1,
	display_order INTEGER NOT NULL DEFAULT 1,
	UNIQUE (entity_id, kind)
);
`

// Registry is a sqlite-backed registry.
type Registry struct {
	db *sql.DB
}

// Open opens (and bootstraps) a registry database at path. The special path
// ":memory:" creates a throwaway in-process database.
func Open(path string) (*Registry, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.WrapRegistry("open", "database", path, err)
	}
	// The lookup-then-write reconciliation sequence relies on a single
	// writer; database/sql serializes naturally with one connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.WrapRegistry("migrate", "database", path, err)
	}
	return &Registry{db: db}, nil
}

// Close closes the underlying database.
func (r *Registry) Close() error {
	return r.db.Close()
}

// ListActiveEntities returns all active entities ordered by name.
func (r *Registry) ListActiveEntities(ctx context.Context) ([]types.Entity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, trade_name, website, active FROM entities WHERE active = 1 ORDER BY name`)
	if err != nil {
		return nil, errors.WrapRegistry("list", "entity", "", err)
	}
	defer func() { _ = rows.Close() }()

	var entities []types.Entity
	for rows.Next() {
		var e types.Entity
		var active int
		if err := rows.Scan(&e.ID, &e.CanonicalName, &e.TradeName, &e.Website, &active); err != nil {
			return nil, errors.WrapRegistry("list", "entity", "", err)
		}
		e.Active = active != 0
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapRegistry("list", "entity", "", err)
	}
	return entities, nil
}

// FindMediaRecord returns the current media record for (entityID, kind).
func (r *Registry) FindMediaRecord(ctx context.Context, entityID types.EntityID, kind types.MediaKind) (*types.MediaRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, entity_id, kind, file_url, is_primary, display_order
		 FROM media WHERE entity_id = ? AND kind = ?`,
		entityID.String(), kind.String())

	var rec types.MediaRecord
	var primary int
	err := row.Scan(&rec.ID, &rec.EntityID, &rec.Kind, &rec.FileURL, &primary, &rec.DisplayOrder)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, errors.WrapRegistry("find", "media", entityID.String(), err)
	}
	rec.IsPrimary = primary != 0
	return &rec, nil
}

// CreateMediaRecord inserts a new media record, minting an id when absent.
func (r *Registry) CreateMediaRecord(ctx context.Context, rec *types.MediaRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO media (id, entity_id, kind, file_url, is_primary, display_order)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.EntityID.String(), rec.Kind.String(), rec.FileURL,
		boolToInt(rec.IsPrimary), rec.DisplayOrder)
	if err != nil {
		return errors.WrapRegistry("insert", "media", rec.EntityID.String(), err)
	}
	return nil
}

// UpdateMediaRecord replaces the file URL of an existing record and forces it
// primary.
func (r *Registry) UpdateMediaRecord(ctx context.Context, id string, fileURL string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE media SET file_url = ?, is_primary = 1 WHERE id = ?`, fileURL, id)
	if err != nil {
		return errors.WrapRegistry("update", "media", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.WrapRegistry("update", "media", id, errors.ErrNotFound)
	}
	return nil
}

// SeedEntities inserts entities whose normalized canonical name is not
// already present, minting uuids for new rows. It returns the number
// inserted.
func (r *Registry) SeedEntities(ctx context.Context, entities []types.Entity) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.WrapRegistry("seed", "entity", "", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `SELECT name FROM entities`)
	if err != nil {
		return 0, errors.WrapRegistry("seed", "entity", "", err)
	}
	existing := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			_ = rows.Close()
			return 0, errors.WrapRegistry("seed", "entity", "", err)
		}
		existing[normalize.Name(name)] = true
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return 0, errors.WrapRegistry("seed", "entity", "", err)
	}
	_ = rows.Close()

	inserted := 0
	for _, e := range entities {
		key := normalize.Name(e.CanonicalName)
		if key == "" || existing[key] {
			continue
		}
		id := e.ID
		if id == "" {
			id = types.EntityID(uuid.NewString())
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO entities (id, name, trade_name, website, active) VALUES (?, ?, ?, ?, ?)`,
			id.String(), e.CanonicalName, e.TradeName, e.Website, boolToInt(e.Active))
		if err != nil {
			return 0, errors.WrapRegistry("seed", "entity", e.CanonicalName, err)
		}
		existing[key] = true
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.WrapRegistry("seed", "entity", "", err)
	}
	return inserted, nil
}

// MissingMedia returns active entities with no media record of the given
// kind, ordered by name. Used by `brandmap check` to report coverage gaps.
func (r *Registry) MissingMedia(ctx context.Context, kind types.MediaKind) ([]types.Entity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT e.id, e.name, e.trade_name, e.website, e.active
		 FROM entities e
		 LEFT JOIN media m ON m.entity_id = e.id AND m.kind = ?
		 WHERE e.active = 1 AND m.id IS NULL
		 ORDER BY e.name`, kind.String())
	if err != nil {
		return nil, errors.WrapRegistry("list", "entity", "", err)
	}
	defer func() { _ = rows.Close() }()

	var missing []types.Entity
	for rows.Next() {
		var e types.Entity
		var active int
		if err := rows.Scan(&e.ID, &e.CanonicalName, &e.TradeName, &e.Website, &active); err != nil {
			return nil, errors.WrapRegistry("list", "entity", "", err)
		}
		e.Active = active != 0
		missing = append(missing, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapRegistry("list", "entity", "", err)
	}
	return missing, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
