package customer

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/db"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/db/sqldb"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain"
	domcustomer "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/customer"
)

var now = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newRepo(t *testing.T) *Repo {
	t.Helper()
	d, err := sqldb.OpenMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return New(d)
}

func TestUpsertCustomer_KeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)

	c, err := domcustomer.NewCustomer(42, "ravi", "Ravi", now)
	require.NoError(t, err)
	require.NoError(t, r.UpsertCustomer(ctx, c))

	c2, err := domcustomer.NewCustomer(42, "ravi_k", "Ravi K", now.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, r.UpsertCustomer(ctx, c2))

	got, err := r.GetCustomer(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "ravi_k", got.Username)
	assert.Equal(t, "Ravi K", got.FirstName)
	assert.True(t, now.Equal(got.CreatedAt))

	_, err = r.GetCustomer(ctx, 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfile_UpsertGet(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)

	_, err := r.GetProfile(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	p, err := domcustomer.NewProfile(42, "Ravi Kumar", "9876543210", "12 MG Road", now)
	require.NoError(t, err)
	require.NoError(t, r.UpsertProfile(ctx, p))

	p.Address = "7 Brigade Road"
	require.NoError(t, r.UpsertProfile(ctx, p))

	got, err := r.GetProfile(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "7 Brigade Road", got.Address)
	assert.Equal(t, "Ravi Kumar", got.FullName)
}

func TestUpsertProfile_PostgresError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_profiles (user_id, full_name, phone, address, updated_at) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (user_id)")).
		WillReturnError(assert.AnError)

	err = New(sqldb.New(conn, sqldb.Postgres)).UpsertProfile(context.Background(), domcustomer.Profile{UserID: 1})
	var dbErr *db.Error
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, db.OpInsert, dbErr.Op)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
