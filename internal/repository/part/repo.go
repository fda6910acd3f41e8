package part

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/db"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/db/sqldb"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/facet"
	dompart "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/part"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/search/filter"
)

// conn is the consumer interface over database/sql (ISP).
type conn interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	PingContext(ctx context.Context) error
}

// Repo reads and seeds the spare_parts table.
type Repo struct {
	conn    conn
	dialect sqldb.Dialect
}

// New creates a part repository over an open catalog store.
func New(d *sqldb.DB) *Repo {
	return &Repo{conn: d.Conn(), dialect: d.Dialect()}
}

// Find returns parts matching filters in id order, at most limit rows.
func (r *Repo) Find(ctx context.Context, filters filter.Expression, limit int) ([]dompart.Part, error) {
	args := sqldb.NewArgs(r.dialect)
	where, err := sqldb.Where(filters, columns, args)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	q := "SELECT " + selectColumns + " FROM " + sqldb.TableParts + whereClause(where) + " ORDER BY id"
	if limit > 0 {
		q += " LIMIT " + args.Add(limit)
	}

	rows, err := r.conn.QueryContext(ctx, q, args.Values()...)
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	defer func() { _ = rows.Close() }()

	var parts []dompart.Part
	for rows.Next() {
		var rw row
		if err := rows.Scan(rw.dest()...); err != nil {
			return nil, &db.Error{Op: db.OpSelect, Err: fmt.Errorf("scan part: %w", err)}
		}
		parts = append(parts, rw.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return parts, nil
}

// Get returns a part by id.
func (r *Repo) Get(ctx context.Context, id int64) (dompart.Part, error) {
	args := sqldb.NewArgs(r.dialect)
	q := "SELECT " + selectColumns + " FROM " + sqldb.TableParts + " WHERE id = " + args.Add(id)

	var rw row
	if err := r.conn.QueryRowContext(ctx, q, args.Values()...).Scan(rw.dest()...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dompart.Part{}, domain.ErrPartNotFound
		}
		return dompart.Part{}, &db.Error{Op: db.OpSelect, Err: err}
	}
	return rw.toDomain(), nil
}

// FacetRows projects brand, model, category and year bounds of every part matching filters.
func (r *Repo) FacetRows(ctx context.Context, filters filter.Expression) ([]facet.Row, error) {
	args := sqldb.NewArgs(r.dialect)
	where, err := sqldb.Where(filters, columns, args)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	q := "SELECT bike_brand, bike_model, part_category, year_from, year_to FROM " +
		sqldb.TableParts + whereClause(where)

	rows, err := r.conn.QueryContext(ctx, q, args.Values()...)
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	defer func() { _ = rows.Close() }()

	var out []facet.Row
	for rows.Next() {
		var brand, model, category sql.NullString
		var from, to sql.NullInt64
		if err := rows.Scan(&brand, &model, &category, &from, &to); err != nil {
			return nil, &db.Error{Op: db.OpSelect, Err: fmt.Errorf("scan facet row: %w", err)}
		}
		out = append(out, facet.Row{
			Brand:    strings.TrimSpace(brand.String),
			Model:    strings.TrimSpace(model.String),
			Category: strings.TrimSpace(category.String),
			YearFrom: nullInt(from),
			YearTo:   nullInt(to),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return out, nil
}

// Distinct returns the sorted distinct non-empty values of one field among
// parts matching filters.
func (r *Repo) Distinct(ctx context.Context, field string, filters filter.Expression) ([]string, error) {
	col, ok := columns[field]
	if !ok {
		return nil, fmt.Errorf("%w: unknown field %q", domain.ErrInvalidRequest, field)
	}

	args := sqldb.NewArgs(r.dialect)
	where, err := sqldb.Where(filters, columns, args)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	nonEmpty := col + " IS NOT NULL AND " + col + " <> ''"
	if where == "" {
		where = nonEmpty
	} else {
		where += " AND " + nonEmpty
	}

	q := "SELECT DISTINCT " + col + " FROM " + sqldb.TableParts + whereClause(where) + " ORDER BY " + col

	rows, err := r.conn.QueryContext(ctx, q, args.Values()...)
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	defer func() { _ = rows.Close() }()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, &db.Error{Op: db.OpSelect, Err: fmt.Errorf("scan %s: %w", col, err)}
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return out, nil
}

// Insert stores new parts in one transaction and returns how many were written.
func (r *Repo) Insert(ctx context.Context, parts []dompart.Part) (int, error) {
	if len(parts) == 0 {
		return 0, nil
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, &db.Error{Op: db.OpBegin, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	n := strings.Count(insertColumns, ",") + 1
	for i := range parts {
		args := sqldb.NewArgs(r.dialect)
		ph := make([]string, 0, n)
		for _, v := range insertValues(&parts[i]) {
			ph = append(ph, args.Add(v))
		}
		q := "INSERT INTO " + sqldb.TableParts + " (" + insertColumns + ") VALUES (" + strings.Join(ph, ", ") + ")"
		if _, err := tx.ExecContext(ctx, q, args.Values()...); err != nil {
			return 0, &db.Error{Op: db.OpInsert, Err: fmt.Errorf("part %q: %w", parts[i].Name(), err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, &db.Error{Op: db.OpCommit, Err: err}
	}
	return len(parts), nil
}

// Ping checks the catalog store connection.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.conn.PingContext(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

func whereClause(where string) string {
	if where == "" {
		return ""
	}
	return " WHERE " + where
}
