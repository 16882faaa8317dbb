package voice

import "strings"

// Intent is the closed set of actions the voice channel can trigger. The core
// does not depend on voice being present; this is a fixed keyword table, not
// speech processing.
type Intent string

const (
	IntentShowCart   Intent = "show_cart"
	IntentCheckout   Intent = "checkout"
	IntentTrackOrder Intent = "track_order"
	IntentHistory    Intent = "history"
	IntentUnknown    Intent = "unknown"
)

var keywords = []struct {
	word   string
	intent Intent
}{
	{"cart", IntentShowCart},
	{"bag", IntentShowCart},
	{"checkout", IntentCheckout},
	{"pay", IntentCheckout},
	{"track", IntentTrackOrder},
	{"where", IntentTrackOrder},
	{"history", IntentHistory},
	{"orders", IntentHistory},
}

// Interpret maps a transcribed phrase to an intent. First keyword hit wins;
// anything else is IntentUnknown.
func Interpret(phrase string) Intent {
	p := strings.ToLower(phrase)
	for _, k := range keywords {
		if strings.Contains(p, k.word) {
			return k.intent
		}
	}
	return IntentUnknown
}
