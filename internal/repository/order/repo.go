// Package order persists orders in the relational store.
package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/db"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/db/sqldb"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain"
	domorder "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/order"
)

type conn interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Repo reads and writes the orders table.
type Repo struct {
	conn    conn
	dialect sqldb.Dialect
}

// New creates an order repository.
func New(d *sqldb.DB) *Repo {
	return &Repo{conn: d.Conn(), dialect: d.Dialect()}
}

// Insert stores a new order and returns it with its assigned id.
func (r *Repo) Insert(ctx context.Context, o domorder.Order) (domorder.Order, error) {
	values, err := insertValues(&o)
	if err != nil {
		return domorder.Order{}, &db.Error{Op: db.OpInsert, Err: err}
	}

	args := sqldb.NewArgs(r.dialect)
	ph := make([]string, len(values))
	for i, v := range values {
		ph[i] = args.Add(v)
	}
	q := "INSERT INTO " + sqldb.TableOrders + " (" + insertColumns + ") VALUES (" +
		strings.Join(ph, ", ") + ") RETURNING id"

	var id int64
	if err := r.conn.QueryRowContext(ctx, q, args.Values()...).Scan(&id); err != nil {
		return domorder.Order{}, &db.Error{Op: db.OpInsert, Err: fmt.Errorf("order %s: %w", o.Reference(), err)}
	}
	return o.WithID(id), nil
}

// Get returns an order by id.
func (r *Repo) Get(ctx context.Context, id int64) (domorder.Order, error) {
	args := sqldb.NewArgs(r.dialect)
	q := "SELECT " + selectColumns + " FROM " + sqldb.TableOrders + " WHERE id = " + args.Add(id)

	var rw row
	if err := r.conn.QueryRowContext(ctx, q, args.Values()...).Scan(rw.dest()...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domorder.Order{}, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
		}
		return domorder.Order{}, &db.Error{Op: db.OpSelect, Err: err}
	}
	o, err := rw.toDomain()
	if err != nil {
		return domorder.Order{}, &db.Error{Op: db.OpSelect, Err: err}
	}
	return o, nil
}

// ListByUser returns a customer's orders, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID int64) ([]domorder.Order, error) {
	args := sqldb.NewArgs(r.dialect)
	q := "SELECT " + selectColumns + " FROM " + sqldb.TableOrders +
		" WHERE user_id = " + args.Add(userID) + " ORDER BY created_at DESC, id DESC"
	return r.list(ctx, q, args.Values())
}

// List returns all orders, newest first, optionally restricted to one status.
// A non-positive limit returns every row.
func (r *Repo) List(ctx context.Context, status domorder.Status, limit int) ([]domorder.Order, error) {
	args := sqldb.NewArgs(r.dialect)
	q := "SELECT " + selectColumns + " FROM " + sqldb.TableOrders
	if status != "" {
		q += " WHERE status = " + args.Add(string(status))
	}
	q += " ORDER BY created_at DESC, id DESC"
	if limit > 0 {
		q += " LIMIT " + args.Add(limit)
	}
	return r.list(ctx, q, args.Values())
}

// UpdateStatus sets the status of an order.
func (r *Repo) UpdateStatus(ctx context.Context, id int64, status domorder.Status, at time.Time) error {
	args := sqldb.NewArgs(r.dialect)
	q := "UPDATE " + sqldb.TableOrders + " SET status = " + args.Add(string(status)) +
		", updated_at = " + args.Add(at.UTC()) + " WHERE id = " + args.Add(id)

	res, err := r.conn.ExecContext(ctx, q, args.Values()...)
	if err != nil {
		return &db.Error{Op: db.OpUpdate, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &db.Error{Op: db.OpUpdate, Err: err}
	}
	if n == 0 {
		return fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *Repo) list(ctx context.Context, q string, args []any) ([]domorder.Order, error) {
	rows, err := r.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	defer func() { _ = rows.Close() }()

	out := []domorder.Order{}
	for rows.Next() {
		var rw row
		if err := rows.Scan(rw.dest()...); err != nil {
			return nil, &db.Error{Op: db.OpSelect, Err: fmt.Errorf("scan order: %w", err)}
		}
		o, err := rw.toDomain()
		if err != nil {
			return nil, &db.Error{Op: db.OpSelect, Err: err}
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	return out, nil
}
