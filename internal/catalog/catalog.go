package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	cartdomain "github.com/aishops/ryder/internal/cart/domain"
	orderdomain "github.com/aishops/ryder/internal/order/domain"
)

// Store is a read-only catalog entry: a shop pinned near the session's
// location with its product list.
type Store struct {
	ID       string
	Name     string
	Category string
	Location orderdomain.Coordinate
	Products []cartdomain.Product
}

// Seed builds the demo stores at fixed offsets from the given center, the way
// the marketplace pins shops around the customer. Deterministic for a given
// center.
func Seed(center orderdomain.Coordinate) []Store {
	return []Store{
		{
			ID:       "1",
			Name:     "Café Regional",
			Category: "food",
			Location: orderdomain.Coordinate{Lat: center.Lat + 0.005, Lng: center.Lng + 0.005},
			Products: []cartdomain.Product{
				{ID: "101", Name: "Espresso", PriceCents: 1200, StoreID: "1"},
				{ID: "102", Name: "Latte", PriceCents: 1500, StoreID: "1"},
				{ID: "103", Name: "Blueberry Muffin", PriceCents: 900, StoreID: "1"},
				{ID: "104", Name: "Butter Croissant", PriceCents: 1100, StoreID: "1"},
			},
		},
		{
			ID:       "2",
			Name:     "Electro Shop",
			Category: "tech",
			Location: orderdomain.Coordinate{Lat: center.Lat - 0.005, Lng: center.Lng - 0.004},
			Products: []cartdomain.Product{
				{ID: "201", Name: "USB-C Charger", PriceCents: 4500, StoreID: "2"},
				{ID: "202", Name: "BT Headphones", PriceCents: 12000, StoreID: "2"},
				{ID: "203", Name: "USB-C Cable 1m", PriceCents: 2500, StoreID: "2"},
			},
		},
		{
			ID:       "3",
			Name:     "Moda Urbana",
			Category: "fashion",
			Location: orderdomain.Coordinate{Lat: center.Lat + 0.004, Lng: center.Lng - 0.006},
			Products: []cartdomain.Product{
				{ID: "301", Name: "Oversize Tee", PriceCents: 8500, StoreID: "3"},
				{ID: "302", Name: "Slim Jean", PriceCents: 15000, StoreID: "3"},
				{ID: "303", Name: "Leather Belt", PriceCents: 6000, StoreID: "3"},
			},
		},
	}
}

// Catalog answers store and product lookups for one session's seeded set.
type Catalog struct {
	stores []Store
}

func New(stores []Store) *Catalog {
	return &Catalog{stores: stores}
}

func (c *Catalog) Stores() []Store {
	out := make([]Store, len(c.stores))
	copy(out, c.stores)
	return out
}

// Search filters stores by normalized substring match on the name, ignoring
// case and diacritics ("cafe" finds "Café Regional").
func (c *Catalog) Search(query string) []Store {
	q := normalize(query)
	var out []Store
	for _, s := range c.stores {
		if strings.Contains(normalize(s.Name), q) {
			out = append(out, s)
		}
	}
	return out
}

// Store finds a store by id.
func (c *Catalog) Store(id string) (Store, bool) {
	for _, s := range c.stores {
		if s.ID == id {
			return s, true
		}
	}
	return Store{}, false
}

// Product finds a product by id across all stores.
func (c *Catalog) Product(id string) (cartdomain.Product, bool) {
	for _, s := range c.stores {
		for _, p := range s.Products {
			if p.ID == id {
				return p, true
			}
		}
	}
	return cartdomain.Product{}, false
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalize(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
