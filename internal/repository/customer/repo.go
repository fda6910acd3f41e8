// Package customer persists customers and delivery profiles.
package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/db"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/db/sqldb"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain"
	domcustomer "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/customer"
)

type conn interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Repo reads and writes the users and user_profiles tables.
type Repo struct {
	conn    conn
	dialect sqldb.Dialect
}

// New creates a customer repository.
func New(d *sqldb.DB) *Repo {
	return &Repo{conn: d.Conn(), dialect: d.Dialect()}
}

// UpsertCustomer inserts a customer or refreshes username and first name.
// The original created_at is kept.
func (r *Repo) UpsertCustomer(ctx context.Context, c domcustomer.Customer) error {
	args := sqldb.NewArgs(r.dialect)
	q := "INSERT INTO " + sqldb.TableUsers + " (user_id, username, first_name, created_at) VALUES (" +
		args.Add(c.UserID) + ", " + args.Add(c.Username) + ", " + args.Add(c.FirstName) + ", " + args.Add(c.CreatedAt) +
		") ON CONFLICT (user_id) DO UPDATE SET username = excluded.username, first_name = excluded.first_name"

	if _, err := r.conn.ExecContext(ctx, q, args.Values()...); err != nil {
		return &db.Error{Op: db.OpInsert, Err: fmt.Errorf("customer %d: %w", c.UserID, err)}
	}
	return nil
}

// GetCustomer returns a customer by user id.
func (r *Repo) GetCustomer(ctx context.Context, userID int64) (domcustomer.Customer, error) {
	args := sqldb.NewArgs(r.dialect)
	q := "SELECT user_id, username, first_name, created_at FROM " + sqldb.TableUsers +
		" WHERE user_id = " + args.Add(userID)

	var (
		c                   domcustomer.Customer
		username, firstName sql.NullString
	)
	err := r.conn.QueryRowContext(ctx, q, args.Values()...).Scan(&c.UserID, &username, &firstName, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domcustomer.Customer{}, fmt.Errorf("customer %d: %w", userID, domain.ErrNotFound)
		}
		return domcustomer.Customer{}, &db.Error{Op: db.OpSelect, Err: err}
	}
	c.Username = username.String
	c.FirstName = firstName.String
	c.CreatedAt = c.CreatedAt.UTC()
	return c, nil
}

// UpsertProfile writes a delivery profile, replacing any previous one.
func (r *Repo) UpsertProfile(ctx context.Context, p domcustomer.Profile) error {
	args := sqldb.NewArgs(r.dialect)
	q := "INSERT INTO " + sqldb.TableProfiles + " (user_id, full_name, phone, address, updated_at) VALUES (" +
		args.Add(p.UserID) + ", " + args.Add(p.FullName) + ", " + args.Add(p.Phone) + ", " +
		args.Add(p.Address) + ", " + args.Add(p.UpdatedAt) + ") ON CONFLICT (user_id) DO UPDATE SET " +
		"full_name = excluded.full_name, phone = excluded.phone, address = excluded.address, updated_at = excluded.updated_at"

	if _, err := r.conn.ExecContext(ctx, q, args.Values()...); err != nil {
		return &db.Error{Op: db.OpInsert, Err: fmt.Errorf("profile %d: %w", p.UserID, err)}
	}
	return nil
}

// GetProfile returns the delivery profile of a customer.
func (r *Repo) GetProfile(ctx context.Context, userID int64) (domcustomer.Profile, error) {
	args := sqldb.NewArgs(r.dialect)
	q := "SELECT user_id, full_name, phone, address, updated_at FROM " + sqldb.TableProfiles +
		" WHERE user_id = " + args.Add(userID)

	var p domcustomer.Profile
	err := r.conn.QueryRowContext(ctx, q, args.Values()...).Scan(&p.UserID, &p.FullName, &p.Phone, &p.Address, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domcustomer.Profile{}, domain.ErrProfileNotFound
		}
		return domcustomer.Profile{}, &db.Error{Op: db.OpSelect, Err: err}
	}
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}
