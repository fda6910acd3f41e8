package part

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/facet"
	dompart "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/part"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/search/filter"
)

type stubReader struct {
	err   error
	calls int
}

func (s *stubReader) Find(context.Context, filter.Expression, int) ([]dompart.Part, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []dompart.Part{dompart.Reconstruct(dompart.Attrs{ID: 1, Name: "Horn"})}, nil
}

func (s *stubReader) Get(_ context.Context, id int64) (dompart.Part, error) {
	s.calls++
	if s.err != nil {
		return dompart.Part{}, s.err
	}
	return dompart.Reconstruct(dompart.Attrs{ID: id}), nil
}

func (s *stubReader) FacetRows(context.Context, filter.Expression) ([]facet.Row, error) {
	s.calls++
	return nil, s.err
}

func (s *stubReader) Distinct(context.Context, string, filter.Expression) ([]string, error) {
	s.calls++
	return []string{"Bajaj"}, s.err
}

func (s *stubReader) Ping(context.Context) error { return s.err }

func testBreaker() BreakerConfig {
	return BreakerConfig{
		Name:         "test-store",
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  3,
		FailureRatio: 0.5,
	}
}

func TestGuarded_PassesThrough(t *testing.T) {
	g := NewGuarded(&stubReader{}, testBreaker(), nil)

	parts, err := g.Find(context.Background(), filter.Expression{}, 10)
	require.NoError(t, err)
	require.Len(t, parts, 1)

	brands, err := g.Distinct(context.Background(), dompart.FieldBrand, filter.Expression{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bajaj"}, brands)

	rows, err := g.FacetRows(context.Background(), filter.Expression{})
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestGuarded_OpensAndFailsFast(t *testing.T) {
	inner := &stubReader{err: errors.New("dial tcp: connection refused")}
	g := NewGuarded(inner, testBreaker(), nil)

	for i := 0; i < 3; i++ {
		_, err := g.Find(context.Background(), filter.Expression{}, 10)
		require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	}
	assert.Equal(t, "open", g.State())

	_, err := g.Find(context.Background(), filter.Expression{}, 10)
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Equal(t, 3, inner.calls, "open breaker must not reach the store")
}

func TestGuarded_NotFoundKeepsBreakerClosed(t *testing.T) {
	inner := &stubReader{err: domain.ErrPartNotFound}
	g := NewGuarded(inner, testBreaker(), nil)

	for i := 0; i < 5; i++ {
		_, err := g.Get(context.Background(), 1)
		require.ErrorIs(t, err, domain.ErrPartNotFound)
		assert.NotErrorIs(t, err, domain.ErrStoreUnavailable)
	}
	assert.Equal(t, "closed", g.State())
}

func TestGuarded_PingBypassesBreaker(t *testing.T) {
	inner := &stubReader{err: errors.New("down")}
	g := NewGuarded(inner, testBreaker(), nil)
	for i := 0; i < 3; i++ {
		_, _ = g.Find(context.Background(), filter.Expression{}, 1)
	}
	assert.EqualError(t, g.Ping(context.Background()), "down")
}
