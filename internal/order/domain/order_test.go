package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/aishops/ryder/internal/cart/domain"
)

func TestNewCoordinateRejectsNonFinite(t *testing.T) {
	_, err := NewCoordinate(math.NaN(), 0)
	assert.ErrorIs(t, err, ErrBadCoordinate)

	_, err = NewCoordinate(0, math.Inf(1))
	assert.ErrorIs(t, err, ErrBadCoordinate)

	c, err := NewCoordinate(-27.45, -58.99)
	require.NoError(t, err)
	assert.Equal(t, -27.45, c.Lat)
}

func TestParsePaymentMethod(t *testing.T) {
	m, err := ParsePaymentMethod("CASH")
	require.NoError(t, err)
	assert.Equal(t, PaymentCash, m)

	_, err = ParsePaymentMethod("crypto")
	assert.ErrorIs(t, err, ErrBadPaymentMethod)
}

func TestNewOrderSnapshotsLines(t *testing.T) {
	lines := []cartdomain.CartLine{
		{ProductID: "p1", Name: "Espresso", PriceCents: 1200, Quantity: 2, StoreID: "store-1"},
	}
	o, err := NewOrder("sess-1", lines, Coordinate{}, Coordinate{Lat: 10, Lng: 10}, PaymentCash)
	require.NoError(t, err)

	lines[0].Quantity = 99
	assert.Equal(t, 2, o.Lines[0].Quantity)
	assert.Equal(t, int64(2400), o.TotalCents)
	assert.Equal(t, StatusCreated, o.Status)
}

func TestNewOrderRejectsEmpty(t *testing.T) {
	_, err := NewOrder("sess-1", nil, Coordinate{}, Coordinate{}, PaymentCard)
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestHistoryEntryUsesShortID(t *testing.T) {
	lines := []cartdomain.CartLine{
		{ProductID: "p1", Name: "Espresso", PriceCents: 1200, Quantity: 1, StoreID: "store-1"},
	}
	o, err := NewOrder("sess-1", lines, Coordinate{}, Coordinate{}, PaymentCard)
	require.NoError(t, err)

	entry := o.ToHistoryEntry()
	assert.NotContains(t, entry.ID, "-")
	assert.Equal(t, o.TotalCents, entry.TotalCents)
}
