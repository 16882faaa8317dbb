package domain

import (
	"time"

	cartdomain "github.com/aishops/ryder/internal/cart/domain"
)

// OrderArchived is emitted through the outbox when the user acknowledges
// delivery. Remote archival is fire-and-forget; the local transition is
// authoritative.
type OrderArchived struct {
	EntryID     string                `json:"entry_id"`
	OrderID     string                `json:"order_id"`
	SessionID   string                `json:"session_id"`
	Lines       []cartdomain.CartLine `json:"lines"`
	TotalCents  int64                 `json:"total_cents"`
	Payment     PaymentMethod         `json:"payment"`
	CompletedAt time.Time             `json:"completed_at"`
}
