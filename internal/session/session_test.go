package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdomain "github.com/aishops/ryder/internal/order/domain"
)

func TestRegistryCreateAndGet(t *testing.T) {
	r := NewRegistry(5000)

	s, err := r.Create()
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, int64(5000), s.Wallet.AvailableCents())
	assert.True(t, s.Cart.Empty())
	assert.Nil(t, s.Destination)

	got, err := r.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = r.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionsAreIsolated(t *testing.T) {
	r := NewRegistry(5000)

	a, err := r.Create()
	require.NoError(t, err)
	b, err := r.Create()
	require.NoError(t, err)

	a.SetDestination(orderdomain.Coordinate{Lat: 1, Lng: 1})
	p, ok := a.Catalog.Product("101")
	require.True(t, ok)
	a.Cart.AddItem(p, p.StoreID)

	assert.True(t, b.Cart.Empty())
	assert.Nil(t, b.Destination)
}

func TestRemoveReleasesHold(t *testing.T) {
	r := NewRegistry(5000)

	s, err := r.Create()
	require.NoError(t, err)
	s.SetDestination(orderdomain.Coordinate{})

	require.NoError(t, s.Wallet.Hold(2000))
	s.ActiveOrder = &orderdomain.Order{TotalCents: 2000, Status: orderdomain.StatusInTransit}

	r.Remove(s.ID)
	assert.Equal(t, int64(5000), s.Wallet.AvailableCents())
	assert.Nil(t, s.ActiveOrder)

	_, err = r.Get(s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
