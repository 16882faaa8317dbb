package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	cartdomain "github.com/aishops/ryder/internal/cart/domain"
	"github.com/aishops/ryder/internal/catalog"
	orderdomain "github.com/aishops/ryder/internal/order/domain"
	"github.com/aishops/ryder/internal/tracking"
	"github.com/aishops/ryder/internal/wallet"
)

var ErrNotFound = errors.New("session not found")

// Session is the explicit per-user state that the original screens kept in
// ambient globals: cart, wallet, resolved destination, seeded catalog, the
// active order and its courier, and the locally kept order history. One
// session is single-writer; callers take the embedded mutex around compound
// operations.
type Session struct {
	sync.Mutex

	ID          string
	Cart        *cartdomain.Cart
	Wallet      *wallet.Wallet
	Destination *orderdomain.Coordinate
	Catalog     *catalog.Catalog

	// Active order state. At most one non-archived order per session.
	ActiveOrder *orderdomain.Order
	Courier     *tracking.Courier

	History []orderdomain.HistoryEntry
}

// SetDestination records the geolocation reading and seeds the catalog around
// it. Without a destination the session cannot check out.
func (s *Session) SetDestination(c orderdomain.Coordinate) {
	s.Destination = &c
	s.Catalog = catalog.New(catalog.Seed(c))
}

// Registry holds the live sessions, keyed by generated id. Sessions are
// isolated; nothing is shared across keys.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	balance  int64
}

// NewRegistry creates a registry whose sessions start with the given demo
// wallet balance.
func NewRegistry(startingBalanceCents int64) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		balance:  startingBalanceCents,
	}
}

func (r *Registry) Create() (*Session, error) {
	w, err := wallet.New(r.balance)
	if err != nil {
		return nil, err
	}
	s := &Session{
		ID:      uuid.NewString(),
		Cart:    cartdomain.NewCart(),
		Wallet:  w,
		Catalog: catalog.New(nil),
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s, nil
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Remove tears down a session. A courier still running is stopped before the
// session is dropped so no tick fires against an unowned session, and any
// wallet hold for an unfinished order is released.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return
	}
	abandonActive(s)
}

// Shutdown stops every live courier. In-transit orders are abandoned, not
// resumed on restart; their holds are released.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		abandonActive(s)
	}
}

// abandonActive stops the courier outside the session lock; the courier's
// goroutine may be blocked on that lock through an observer, and Stop waits
// for it to exit.
func abandonActive(s *Session) {
	s.Lock()
	courier := s.Courier
	order := s.ActiveOrder
	s.Courier = nil
	s.ActiveOrder = nil
	s.Unlock()

	if courier != nil {
		courier.Stop()
	}
	if order != nil {
		s.Lock()
		_ = s.Wallet.Release(order.TotalCents)
		s.Unlock()
	}
}
