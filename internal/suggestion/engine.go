package suggestion

import (
	"strings"

	cartdomain "github.com/aishops/ryder/internal/cart/domain"
)

// Rule pairs a trigger keyword with the product to cross-sell when the
// trigger appears in the cart and the suggestion does not.
type Rule struct {
	Trigger   string
	Keyword   string // keyword identifying the suggested product in the cart
	Product   cartdomain.Product
	Rationale string
}

// Suggestion carries at most one recommended product. Ok is false when no
// rule matched, which is a normal outcome, not an error.
type Suggestion struct {
	Ok        bool
	Product   cartdomain.Product
	Rationale string
}

const neutralRationale = "Your bag looks complete."

// Engine evaluates a fixed, ordered rule table against cart contents. First
// match wins. Matching is case-insensitive substring matching on line names.
type Engine struct {
	rules []Rule
}

func NewEngine(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

// Evaluate returns the first rule whose trigger keyword appears in the cart
// while its suggested product's keyword does not.
func (e *Engine) Evaluate(lines []cartdomain.CartLine) Suggestion {
	for _, r := range e.rules {
		if containsKeyword(lines, r.Trigger) && !containsKeyword(lines, r.Keyword) {
			return Suggestion{Ok: true, Product: r.Product, Rationale: r.Rationale}
		}
	}
	return Suggestion{Rationale: neutralRationale}
}

func containsKeyword(lines []cartdomain.CartLine, keyword string) bool {
	k := strings.ToLower(keyword)
	for _, l := range lines {
		if strings.Contains(strings.ToLower(l.Name), k) {
			return true
		}
	}
	return false
}

// DefaultRules is the demo cross-sell table, evaluated top to bottom.
func DefaultRules() []Rule {
	return []Rule{
		{
			Trigger:   "espresso",
			Keyword:   "muffin",
			Product:   cartdomain.Product{ID: "103", Name: "Blueberry Muffin", PriceCents: 900, StoreID: "1"},
			Rationale: "Pairs well with your espresso.",
		},
		{
			Trigger:   "coffee",
			Keyword:   "croissant",
			Product:   cartdomain.Product{ID: "104", Name: "Butter Croissant", PriceCents: 1100, StoreID: "1"},
			Rationale: "A croissant goes well with coffee.",
		},
		{
			Trigger:   "charger",
			Keyword:   "cable",
			Product:   cartdomain.Product{ID: "203", Name: "USB-C Cable 1m", PriceCents: 2500, StoreID: "2"},
			Rationale: "A spare cable for your new charger.",
		},
		{
			Trigger:   "jean",
			Keyword:   "belt",
			Product:   cartdomain.Product{ID: "303", Name: "Leather Belt", PriceCents: 6000, StoreID: "3"},
			Rationale: "Complete the outfit with a belt.",
		},
	}
}
