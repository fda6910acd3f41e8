package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain"
)

var placedAt = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func TestNew_ComputesTotal(t *testing.T) {
	lines := []Line{
		{PartID: 1, Item: "Brake Pad", Qty: 2, Brand: "Bajaj", Model: "Pulsar 150", Price: 320},
		{PartID: 2, Item: "Air Filter", Qty: 1, Brand: "Honda", Model: "Shine", Price: 180.5},
	}
	o, err := New("ORD-1", 42, lines, "  ", "9876543210", "MG Road", "", placedAt)
	require.NoError(t, err)

	assert.InDelta(t, 820.5, o.Total(), 0.001)
	assert.Equal(t, StatusPending, o.Status())
	assert.Equal(t, DefaultFullName, o.FullName())
	assert.Equal(t, placedAt, o.CreatedAt())

	lines[0].Qty = 9
	assert.Equal(t, 2, o.Lines()[0].Qty, "lines are copied")
}

func TestNew_Validation(t *testing.T) {
	_, err := New("ORD-1", 42, nil, "", "", "", "", placedAt)
	assert.ErrorIs(t, err, domain.ErrCartEmpty)

	_, err = New("ORD-1", 0, []Line{{Item: "x", Qty: 1}}, "", "", "", "", placedAt)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = New("ORD-1", 1, []Line{{Item: "x", Qty: 0}}, "", "", "", "", placedAt)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestReference(t *testing.T) {
	assert.Equal(t, "ORD-20250314-42-ABCDEF12", Reference(placedAt, 42, "abcdef1234567890"))
	assert.Equal(t, "ORD-20250314-7-AB", Reference(placedAt, 7, "ab"))
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" Shipped ")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, st)

	_, err = ParseStatus("lost")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestTransition(t *testing.T) {
	o, err := New("ORD-1", 42, []Line{{Item: "x", Qty: 1, Price: 10}}, "A", "", "", "", placedAt)
	require.NoError(t, err)

	later := placedAt.Add(time.Hour)
	require.NoError(t, o.Transition(StatusShipped, later))
	assert.Equal(t, StatusShipped, o.Status())
	assert.Equal(t, later, o.UpdatedAt())

	require.NoError(t, o.Transition(StatusDelivered, later))
	assert.ErrorIs(t, o.Transition(StatusPending, later), domain.ErrInvalidStatus)
	assert.ErrorIs(t, o.Transition(Status("lost"), later), domain.ErrInvalidStatus)
}
