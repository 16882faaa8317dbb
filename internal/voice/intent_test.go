package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpret(t *testing.T) {
	cases := map[string]Intent{
		"show my cart":       IntentShowCart,
		"open the BAG":       IntentShowCart,
		"I want to checkout": IntentCheckout,
		"where is my order":  IntentTrackOrder,
		"show order history": IntentHistory,
		"play some music":    IntentUnknown,
		"":                   IntentUnknown,
	}
	for phrase, want := range cases {
		assert.Equal(t, want, Interpret(phrase), "phrase %q", phrase)
	}
}
