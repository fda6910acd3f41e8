package sqldb

import (
	"fmt"
	"strconv"
)

// Dialect selects placeholder and DDL syntax.
type Dialect string

// Supported dialects.
const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// DialectFor maps a database/sql driver name to its dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverPostgres, "postgres":
		return Postgres, nil
	case DriverSQLite:
		return SQLite, nil
	default:
		return "", fmt.Errorf("unsupported driver %q (want %s or %s)", driver, DriverPostgres, DriverSQLite)
	}
}

// Placeholder returns the n-th (1-based) bind parameter.
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// AutoID returns the column definition of an auto-incrementing primary key.
func (d Dialect) AutoID() string {
	if d == Postgres {
		return "BIGSERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

// Timestamp returns the column type for a point in time.
func (d Dialect) Timestamp() string {
	if d == Postgres {
		return "TIMESTAMPTZ"
	}
	return "TIMESTAMP"
}

// Args accumulates bind values and hands out matching placeholders.
type Args struct {
	dialect Dialect
	values  []any
}

// NewArgs creates an empty argument list for the dialect.
func NewArgs(d Dialect) *Args {
	return &Args{dialect: d}
}

// Add appends a value and returns its placeholder.
func (a *Args) Add(v any) string {
	a.values = append(a.values, v)
	return a.dialect.Placeholder(len(a.values))
}

// Values returns the bind values in placeholder order.
func (a *Args) Values() []any { return a.values }
