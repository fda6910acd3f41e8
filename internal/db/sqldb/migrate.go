package sqldb

import (
	"context"
	"fmt"
	"strings"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/db"
)

// Table names.
const (
	TableParts    = "spare_parts"
	TableUsers    = "users"
	TableProfiles = "user_profiles"
	TableOrders   = "orders"
)

// migration is one schema step. Placeholders {{id}} and {{ts}} are
// replaced with the dialect's auto-id and timestamp column types.
type migration struct {
	version    int
	statements []string
}

var migrations = []migration{
	{
		version: 1,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS spare_parts (
				id {{id}},
				part_name TEXT NOT NULL,
				description TEXT,
				part_category TEXT NOT NULL,
				bike_brand TEXT NOT NULL,
				bike_model TEXT NOT NULL,
				year_from INTEGER,
				year_to INTEGER,
				price NUMERIC(10,2) NOT NULL DEFAULT 0,
				stock_qty INTEGER NOT NULL DEFAULT 0,
				color TEXT,
				web_image_url TEXT,
				part_number TEXT
			)`,
			`CREATE INDEX IF NOT EXISTS idx_spare_parts_brand_model ON spare_parts (bike_brand, bike_model)`,
			`CREATE INDEX IF NOT EXISTS idx_spare_parts_category ON spare_parts (part_category)`,
		},
	},
	{
		version: 2,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS users (
				user_id BIGINT PRIMARY KEY,
				username TEXT,
				first_name TEXT,
				created_at {{ts}} NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS user_profiles (
				user_id BIGINT PRIMARY KEY,
				full_name TEXT NOT NULL,
				phone TEXT NOT NULL,
				address TEXT NOT NULL,
				updated_at {{ts}} NOT NULL
			)`,
		},
	},
	{
		version: 3,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS orders (
				id {{id}},
				order_reference TEXT NOT NULL UNIQUE,
				user_id BIGINT NOT NULL,
				items TEXT NOT NULL,
				total_amount NUMERIC(12,2) NOT NULL,
				status TEXT NOT NULL,
				full_name TEXT,
				phone TEXT,
				address TEXT,
				notes TEXT,
				created_at {{ts}} NOT NULL,
				updated_at {{ts}} NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders (user_id, created_at)`,
			`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status)`,
		},
	},
}

// LatestVersion is the schema version after all migrations apply.
func LatestVersion() int { return migrations[len(migrations)-1].version }

// Migrate applies pending schema migrations and returns the resulting version.
// Each migration runs in its own transaction together with its version bump.
func (d *DB) Migrate(ctx context.Context) (int, error) {
	if _, err := d.conn.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`); err != nil {
		return 0, &db.Error{Op: db.OpMigrate, Err: err}
	}

	current, err := d.SchemaVersion(ctx)
	if err != nil {
		return 0, err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := d.apply(ctx, m); err != nil {
			return current, fmt.Errorf("migration %d: %w", m.version, err)
		}
		current = m.version
	}
	return current, nil
}

// SchemaVersion returns the highest applied migration, 0 when none.
func (d *DB) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	row := d.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`)
	if err := row.Scan(&v); err != nil {
		return 0, &db.Error{Op: db.OpSelect, Err: err}
	}
	return v, nil
}

func (d *DB) apply(ctx context.Context, m migration) error {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return &db.Error{Op: db.OpBegin, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range m.statements {
		if _, err := tx.ExecContext(ctx, d.render(stmt)); err != nil {
			return &db.Error{Op: db.OpMigrate, Err: err}
		}
	}

	args := NewArgs(d.dialect)
	q := `INSERT INTO schema_version (version) VALUES (` + args.Add(m.version) + `)`
	if _, err := tx.ExecContext(ctx, q, args.Values()...); err != nil {
		return &db.Error{Op: db.OpInsert, Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &db.Error{Op: db.OpCommit, Err: err}
	}
	return nil
}

func (d *DB) render(stmt string) string {
	return strings.NewReplacer(
		"{{id}}", d.dialect.AutoID(),
		"{{ts}}", d.dialect.Timestamp(),
	).Replace(stmt)
}
