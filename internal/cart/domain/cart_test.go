package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(t *testing.T, id, name string, price int64) Product {
	t.Helper()
	p, err := NewProduct(id, name, price, "store-1")
	require.NoError(t, err)
	return p
}

func TestNewProductRejectsInvalid(t *testing.T) {
	_, err := NewProduct("", "Espresso", 1200, "store-1")
	assert.ErrorIs(t, err, ErrInvalidProduct)

	_, err = NewProduct("p1", "", 1200, "store-1")
	assert.ErrorIs(t, err, ErrInvalidProduct)

	_, err = NewProduct("p1", "Espresso", -1, "store-1")
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestAddItemMergesLines(t *testing.T) {
	c := NewCart()
	espresso := product(t, "p1", "Espresso", 1200)

	c.AddItem(espresso, "store-1")
	assert.Equal(t, int64(1200), c.TotalCents())
	assert.Equal(t, 1, c.LineCount())

	c.AddItem(espresso, "store-1")
	assert.Equal(t, int64(2400), c.TotalCents())
	assert.Equal(t, 1, c.LineCount(), "same product must merge into one line")
}

func TestRemoveItemDecrementsThenDeletes(t *testing.T) {
	c := NewCart()
	c.AddItem(product(t, "p1", "Espresso", 1200), "store-1")
	c.AddItem(product(t, "p1", "Espresso", 1200), "store-1")

	c.RemoveItem("p1")
	require.Equal(t, 1, c.LineCount())
	assert.Equal(t, 1, c.Lines()[0].Quantity)

	c.RemoveItem("p1")
	assert.Equal(t, 0, c.LineCount(), "last unit removes the line, never quantity zero")
	assert.True(t, c.Empty())
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	c := NewCart()
	c.AddItem(product(t, "p1", "Espresso", 1200), "store-1")

	c.RemoveItem("nope")
	assert.Equal(t, 1, c.LineCount())
	assert.Equal(t, int64(1200), c.TotalCents())
}

func TestStoreAssociationClearedWhenEmpty(t *testing.T) {
	c := NewCart()
	c.AddItem(product(t, "p1", "Espresso", 1200), "store-1")
	require.Equal(t, "store-1", c.StoreID())

	c.RemoveItem("p1")
	assert.Equal(t, "", c.StoreID())
}

func TestTotalMatchesRecomputation(t *testing.T) {
	c := NewCart()
	prods := []Product{
		product(t, "p1", "Espresso", 1200),
		product(t, "p2", "Muffin", 900),
		product(t, "p3", "Charger", 4500),
	}

	// Interleaved adds and removes; total must always equal a from-scratch sum.
	ops := []func(){
		func() { c.AddItem(prods[0], "store-1") },
		func() { c.AddItem(prods[1], "store-1") },
		func() { c.AddItem(prods[0], "store-1") },
		func() { c.AddItem(prods[2], "store-2") },
		func() { c.RemoveItem("p2") },
		func() { c.AddItem(prods[2], "store-2") },
		func() { c.RemoveItem("p1") },
	}
	for _, op := range ops {
		op()
		var want int64
		for _, l := range c.Lines() {
			want += int64(l.Quantity) * l.PriceCents
		}
		assert.Equal(t, want, c.TotalCents())
	}
}

func TestSnapshotIsolation(t *testing.T) {
	c := NewCart()
	c.AddItem(product(t, "p1", "Espresso", 1200), "store-1")

	snap := c.Snapshot()
	c.AddItem(product(t, "p1", "Espresso", 1200), "store-1")
	c.AddItem(product(t, "p2", "Muffin", 900), "store-1")

	require.Len(t, snap, 1)
	assert.Equal(t, 1, snap[0].Quantity, "mutating the cart must not alter the snapshot")
}
