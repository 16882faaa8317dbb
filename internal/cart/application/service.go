package application

import (
	"errors"
	"log/slog"

	cartdomain "github.com/aishops/ryder/internal/cart/domain"
	"github.com/aishops/ryder/internal/session"
)

var ErrUnknownProduct = errors.New("unknown product")

// View is the cart as the UI reads it: lines, recomputed total, distinct line
// count for the badge.
type View struct {
	Lines      []cartdomain.CartLine
	TotalCents int64
	LineCount  int
}

// Service applies cart operations to a session. All operations take the
// session lock; the cart itself stays a plain data structure.
type Service struct {
	log *slog.Logger
}

func NewService(log *slog.Logger) *Service {
	return &Service{log: log}
}

// AddItem resolves the product against the session's catalog and adds one
// unit to the cart.
func (s *Service) AddItem(sess *session.Session, productID string) (View, error) {
	sess.Lock()
	defer sess.Unlock()

	p, ok := sess.Catalog.Product(productID)
	if !ok {
		return View{}, ErrUnknownProduct
	}
	sess.Cart.AddItem(p, p.StoreID)
	s.log.Debug("cart item added", "session_id", sess.ID, "product_id", productID)
	return view(sess), nil
}

// RemoveItem takes one unit out of the cart. Unknown product ids are a no-op,
// matching how repeated taps on a removed line behave.
func (s *Service) RemoveItem(sess *session.Session, productID string) View {
	sess.Lock()
	defer sess.Unlock()

	sess.Cart.RemoveItem(productID)
	return view(sess)
}

func (s *Service) View(sess *session.Session) View {
	sess.Lock()
	defer sess.Unlock()
	return view(sess)
}

func view(sess *session.Session) View {
	return View{
		Lines:      sess.Cart.Lines(),
		TotalCents: sess.Cart.TotalCents(),
		LineCount:  sess.Cart.LineCount(),
	}
}
