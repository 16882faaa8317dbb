package application

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	cartdomain "github.com/aishops/ryder/internal/cart/domain"
	"github.com/aishops/ryder/internal/order/domain"
	"github.com/aishops/ryder/internal/session"
	"github.com/aishops/ryder/internal/suggestion"
	"github.com/aishops/ryder/internal/tracking"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrNoDestination = errors.New("no destination resolved")
	ErrOrderConflict = errors.New("an order is already active")
	ErrNoActiveOrder = errors.New("no active order")
	ErrNotDelivered  = errors.New("order has not been delivered yet")
)

// Tracking is the live view of the active order's simulated delivery.
type Tracking struct {
	Order    domain.Order
	Position domain.Coordinate
	Progress float64
}

// Service owns the order lifecycle: checkout preconditions, the courier
// simulation, delivery acknowledgment and archival.
type Service struct {
	log        *slog.Logger
	history    HistoryRepository
	suggest    *suggestion.Engine
	courierCfg tracking.Config
}

func NewService(log *slog.Logger, history HistoryRepository, suggest *suggestion.Engine, courierCfg tracking.Config) *Service {
	return &Service{
		log:        log,
		history:    history,
		suggest:    suggest,
		courierCfg: courierCfg,
	}
}

// Checkout validates the preconditions, holds the order total on the wallet
// and starts the simulated transit. Every rejection is synchronous and leaves
// the cart and wallet untouched.
func (s *Service) Checkout(ctx context.Context, sess *session.Session, paymentMethod string) (domain.Order, error) {
	payment, err := domain.ParsePaymentMethod(paymentMethod)
	if err != nil {
		return domain.Order{}, err
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.Cart.Empty() {
		return domain.Order{}, ErrEmptyCart
	}
	if sess.Destination == nil {
		return domain.Order{}, ErrNoDestination
	}
	if sess.ActiveOrder != nil {
		return domain.Order{}, ErrOrderConflict
	}

	// Origin is the fulfilling store's pin. A cart whose store has no known
	// location degenerates to origin == destination, which the transit
	// handles by arriving in place.
	origin := *sess.Destination
	if store, ok := sess.Catalog.Store(sess.Cart.StoreID()); ok {
		origin = store.Location
	}

	o, err := domain.NewOrder(sess.ID, sess.Cart.Snapshot(), origin, *sess.Destination, payment)
	if err != nil {
		return domain.Order{}, err
	}
	if err := sess.Wallet.Hold(o.TotalCents); err != nil {
		return domain.Order{}, err
	}

	courier, err := tracking.StartCourier(ctx, s.log, s.courierCfg, origin, *sess.Destination, nil)
	if err != nil {
		_ = sess.Wallet.Release(o.TotalCents)
		return domain.Order{}, err
	}

	o.SetStatus(domain.StatusProcessing)
	sess.ActiveOrder = o
	sess.Courier = courier

	s.log.Info("order created", "order_id", o.ID, "session_id", sess.ID,
		"total_cents", o.TotalCents, "payment", o.Payment)
	return *o, nil
}

// Track reports the active order with the courier's current position. The
// order status is synced from the courier, which owns the tick loop.
func (s *Service) Track(sess *session.Session) (Tracking, error) {
	sess.Lock()
	defer sess.Unlock()

	if sess.ActiveOrder == nil {
		return Tracking{}, ErrNoActiveOrder
	}
	u := sess.Courier.Snapshot()
	if u.Status != sess.ActiveOrder.Status {
		sess.ActiveOrder.SetStatus(u.Status)
	}
	return Tracking{
		Order:    *sess.ActiveOrder,
		Position: u.Position,
		Progress: u.Progress,
	}, nil
}

// Acknowledge archives a delivered order: the wallet hold is captured, the
// cart is cleared, the entry joins the local history, and the archival event
// is queued on the outbox. Remote archival failure is logged and swallowed;
// the local transition is authoritative.
func (s *Service) Acknowledge(ctx context.Context, sess *session.Session) (domain.HistoryEntry, error) {
	sess.Lock()
	if sess.ActiveOrder == nil {
		sess.Unlock()
		return domain.HistoryEntry{}, ErrNoActiveOrder
	}
	if sess.Courier.Snapshot().Status != domain.StatusDelivered {
		sess.Unlock()
		return domain.HistoryEntry{}, ErrNotDelivered
	}

	o := sess.ActiveOrder
	o.SetStatus(domain.StatusArchived)
	entry := o.ToHistoryEntry()

	if err := sess.Wallet.Capture(o.TotalCents); err != nil {
		// Holds are placed at checkout for exactly this amount; a mismatch
		// means corrupted session state, not a user error.
		s.log.Error("wallet capture failed", "order_id", o.ID, "err", err)
	}
	sess.Cart.Clear()
	sess.History = append(sess.History, entry)
	courier := sess.Courier
	sess.ActiveOrder = nil
	sess.Courier = nil
	sess.Unlock()

	courier.Stop()

	event := domain.OrderArchived{
		EntryID:     entry.ID,
		OrderID:     o.ID,
		SessionID:   entry.SessionID,
		Lines:       entry.Lines,
		TotalCents:  entry.TotalCents,
		Payment:     entry.Payment,
		CompletedAt: entry.CompletedAt,
	}
	payload, err := json.Marshal(event)
	if err == nil {
		carrier := propagation.MapCarrier{}
		otel.GetTextMapPropagator().Inject(ctx, carrier)
		err = s.history.SaveWithOutbox(ctx, entry, "OrderArchived", payload,
			map[string]string{"source": "marketplace-service"}, carrier["traceparent"])
	}
	if err != nil {
		s.log.Error("remote archival failed, history kept locally", "order_id", o.ID, "err", err)
	}

	s.log.Info("order archived", "order_id", o.ID, "entry_id", entry.ID)
	return entry, nil
}

// Suggest evaluates the cross-sell rules against the current cart.
func (s *Service) Suggest(sess *session.Session) suggestion.Suggestion {
	sess.Lock()
	lines := sess.Cart.Lines()
	sess.Unlock()
	return s.suggest.Evaluate(lines)
}

// AcceptSuggestion adds the suggested product to the cart, re-evaluating the
// rules first so a stale suggestion cannot be accepted.
func (s *Service) AcceptSuggestion(sess *session.Session) (cartdomain.Product, error) {
	sess.Lock()
	defer sess.Unlock()

	sug := s.suggest.Evaluate(sess.Cart.Lines())
	if !sug.Ok {
		return cartdomain.Product{}, errors.New("no suggestion to accept")
	}
	sess.Cart.AddItem(sug.Product, sug.Product.StoreID)
	return sug.Product, nil
}

// LocalHistory lists the session's archived orders, newest last. This is the
// authoritative user-facing history regardless of remote archival.
func (s *Service) LocalHistory(sess *session.Session) []domain.HistoryEntry {
	sess.Lock()
	defer sess.Unlock()
	out := make([]domain.HistoryEntry, len(sess.History))
	copy(out, sess.History)
	return out
}
