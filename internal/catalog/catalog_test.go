package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdomain "github.com/aishops/ryder/internal/order/domain"
)

func TestSeedIsDeterministic(t *testing.T) {
	center := orderdomain.Coordinate{Lat: -27.45, Lng: -58.99}

	a := Seed(center)
	b := Seed(center)
	assert.Equal(t, a, b)

	require.Len(t, a, 3)
	assert.InDelta(t, center.Lat+0.005, a[0].Location.Lat, 1e-9)
	assert.InDelta(t, center.Lng-0.004, a[1].Location.Lng, 1e-9)
}

func TestSearchIgnoresCaseAndDiacritics(t *testing.T) {
	c := New(Seed(orderdomain.Coordinate{}))

	got := c.Search("cafe")
	require.Len(t, got, 1)
	assert.Equal(t, "Café Regional", got[0].Name)

	assert.Len(t, c.Search(""), 3)
	assert.Empty(t, c.Search("pharmacy"))
}

func TestProductLookup(t *testing.T) {
	c := New(Seed(orderdomain.Coordinate{}))

	p, ok := c.Product("201")
	require.True(t, ok)
	assert.Equal(t, "USB-C Charger", p.Name)
	assert.Equal(t, "2", p.StoreID)

	_, ok = c.Product("999")
	assert.False(t, ok)
}
