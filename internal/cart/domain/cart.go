package domain

import "errors"

var (
	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// Product is an immutable catalog entry. Prices are minor currency units.
type Product struct {
	ID         string
	Name       string
	PriceCents int64
	StoreID    string
}

func NewProduct(id, name string, priceCents int64, storeID string) (Product, error) {
	if id == "" || name == "" || priceCents < 0 {
		return Product{}, ErrInvalidProduct
	}
	return Product{ID: id, Name: name, PriceCents: priceCents, StoreID: storeID}, nil
}

// CartLine holds one product's quantity in the cart. A line never exists with
// quantity zero; it is removed instead.
type CartLine struct {
	ProductID  string
	Name       string
	PriceCents int64
	Quantity   int
	StoreID    string
}

// Cart is the mutable pre-checkout selection. Lines keep insertion order for
// display; the total is recomputed on every call, never cached.
type Cart struct {
	lines []CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

// AddItem increments the quantity for the product, inserting a new line on
// first add. The store the product was added from is recorded on the line.
func (c *Cart) AddItem(p Product, storeID string) {
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, CartLine{
		ProductID:  p.ID,
		Name:       p.Name,
		PriceCents: p.PriceCents,
		Quantity:   1,
		StoreID:    storeID,
	})
}

// RemoveItem decrements the quantity for the product, deleting the line when
// the last unit is removed. Removing an absent product is a no-op.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}
		if c.lines[i].Quantity > 1 {
			c.lines[i].Quantity--
			return
		}
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) TotalCents() int64 {
	var total int64
	for _, l := range c.lines {
		total += int64(l.Quantity) * l.PriceCents
	}
	return total
}

// LineCount is the number of distinct lines, not the summed quantity.
func (c *Cart) LineCount() int {
	return len(c.lines)
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy so callers cannot mutate cart state in place.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// StoreID is the store of the first line, or empty for an empty cart. Single
// store per cart matches how the UI drives checkout; emptying the cart drops
// the association.
func (c *Cart) StoreID() string {
	if len(c.lines) == 0 {
		return ""
	}
	return c.lines[0].StoreID
}

// Snapshot deep-copies the lines for an order. Later cart mutation must never
// reach a created order.
func (c *Cart) Snapshot() []CartLine {
	return c.Lines()
}
