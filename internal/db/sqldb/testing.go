package sqldb

import (
	"context"
	"fmt"
)

// OpenMemory opens a migrated in-memory SQLite catalog (tests and demos).
func OpenMemory(ctx context.Context) (*DB, error) {
	d, err := Open(ctx, Config{Driver: DriverSQLite, DSN: ":memory:"})
	if err != nil {
		return nil, err
	}
	if _, err := d.Migrate(ctx); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return d, nil
}
