package suggestion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	cartdomain "github.com/aishops/ryder/internal/cart/domain"
)

func line(name string) cartdomain.CartLine {
	return cartdomain.CartLine{ProductID: name, Name: name, PriceCents: 1000, Quantity: 1, StoreID: "1"}
}

func TestEvaluateMatchesTrigger(t *testing.T) {
	e := NewEngine(DefaultRules())

	s := e.Evaluate([]cartdomain.CartLine{line("Double Espresso")})
	assert.True(t, s.Ok)
	assert.Equal(t, "Blueberry Muffin", s.Product.Name)
}

func TestEvaluateSkipsWhenSuggestionAlreadyInCart(t *testing.T) {
	e := NewEngine(DefaultRules())

	s := e.Evaluate([]cartdomain.CartLine{line("Double Espresso"), line("Blueberry Muffin")})
	assert.False(t, s.Ok)
	assert.Equal(t, neutralRationale, s.Rationale)
}

func TestEvaluateIsCaseInsensitive(t *testing.T) {
	e := NewEngine(DefaultRules())

	s := e.Evaluate([]cartdomain.CartLine{line("ESPRESSO ristretto")})
	assert.True(t, s.Ok)
}

func TestEvaluateFirstMatchWins(t *testing.T) {
	e := NewEngine(DefaultRules())

	// Both the espresso and charger rules could fire; the table order decides.
	s := e.Evaluate([]cartdomain.CartLine{line("Charger Type C"), line("Espresso")})
	assert.True(t, s.Ok)
	assert.Equal(t, "Blueberry Muffin", s.Product.Name)
}

func TestEvaluateEmptyCart(t *testing.T) {
	e := NewEngine(DefaultRules())

	s := e.Evaluate(nil)
	assert.False(t, s.Ok)
	assert.Equal(t, neutralRationale, s.Rationale)
}
