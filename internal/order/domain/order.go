package domain

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	cartdomain "github.com/aishops/ryder/internal/cart/domain"
)

type Status string

const (
	StatusCreated    Status = "created"
	StatusProcessing Status = "processing"
	StatusInTransit  Status = "in_transit"
	StatusDelivered  Status = "delivered"
	StatusArchived   Status = "archived"
)

// Terminal reports whether no further automatic transition can occur.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusArchived
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

var (
	ErrBadCoordinate    = errors.New("coordinate components must be finite")
	ErrBadPaymentMethod = errors.New("unknown payment method")
	ErrEmptyOrder       = errors.New("order requires at least one line")
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToLower(s)) {
	case PaymentCash:
		return PaymentCash, nil
	case PaymentCard:
		return PaymentCard, nil
	default:
		return "", ErrBadPaymentMethod
	}
}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func NewCoordinate(lat, lng float64) (Coordinate, error) {
	for _, v := range [...]float64{lat, lng} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Coordinate{}, ErrBadCoordinate
		}
	}
	return Coordinate{Lat: lat, Lng: lng}, nil
}

// Order is the immutable checkout-time snapshot of a cart plus delivery and
// payment metadata. Lines are a deep copy; mutating the source cart after
// checkout does not reach the order.
type Order struct {
	ID          string
	SessionID   string
	Lines       []cartdomain.CartLine
	TotalCents  int64
	Origin      Coordinate
	Destination Coordinate
	Payment     PaymentMethod
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewOrder(sessionID string, lines []cartdomain.CartLine, origin, destination Coordinate, payment PaymentMethod) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	snapshot := make([]cartdomain.CartLine, len(lines))
	copy(snapshot, lines)

	var total int64
	for _, l := range snapshot {
		total += int64(l.Quantity) * l.PriceCents
	}

	now := time.Now().UTC()
	return &Order{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		Lines:       snapshot,
		TotalCents:  total,
		Origin:      origin,
		Destination: destination,
		Payment:     payment,
		Status:      StatusCreated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (o *Order) SetStatus(s Status) {
	o.Status = s
	o.UpdatedAt = time.Now().UTC()
}

// HistoryEntry is the archival projection of a completed order, keyed by a
// short display id.
type HistoryEntry struct {
	ID          string
	SessionID   string
	Lines       []cartdomain.CartLine
	TotalCents  int64
	Payment     PaymentMethod
	CompletedAt time.Time
}

func (o *Order) ToHistoryEntry() HistoryEntry {
	lines := make([]cartdomain.CartLine, len(o.Lines))
	copy(lines, o.Lines)
	return HistoryEntry{
		ID:          shortID(o.ID),
		SessionID:   o.SessionID,
		Lines:       lines,
		TotalCents:  o.TotalCents,
		Payment:     o.Payment,
		CompletedAt: time.Now().UTC(),
	}
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
