package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	cartapp "github.com/aishops/ryder/internal/cart/application"
	cartdomain "github.com/aishops/ryder/internal/cart/domain"
	"github.com/aishops/ryder/internal/order/application"
	"github.com/aishops/ryder/internal/order/domain"
	"github.com/aishops/ryder/internal/session"
	"github.com/aishops/ryder/internal/voice"
	"github.com/aishops/ryder/internal/wallet"
)

type ctxKey int

const sessionKey ctxKey = 0

type Handler struct {
	log      *slog.Logger
	sessions *session.Registry
	carts    *cartapp.Service
	orders   *application.Service
	secret   []byte
	tokenTTL time.Duration
	tracer   trace.Tracer
}

func NewHandler(log *slog.Logger, sessions *session.Registry, carts *cartapp.Service, orders *application.Service, secret []byte) *Handler {
	return &Handler{
		log:      log,
		sessions: sessions,
		carts:    carts,
		orders:   orders,
		secret:   secret,
		tokenTTL: 24 * time.Hour,
		tracer:   otel.Tracer("marketplace-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/sessions", h.createSession)

	r.Group(func(r chi.Router) {
		r.Use(h.withSession)
		r.Delete("/session", h.closeSession)
		r.Get("/stores", h.listStores)
		r.Get("/cart", h.getCart)
		r.Post("/cart/items", h.addCartItem)
		r.Delete("/cart/items/{productID}", h.removeCartItem)
		r.Get("/suggestion", h.getSuggestion)
		r.Post("/suggestion/accept", h.acceptSuggestion)
		r.Post("/checkout", h.checkout)
		r.Get("/order", h.trackOrder)
		r.Post("/order/ack", h.acknowledgeOrder)
		r.Get("/history", h.getHistory)
		r.Post("/voice", h.voiceIntent)
	})
	return r
}

// withSession resolves the bearer token into the live session and rejects
// requests for sessions that no longer exist.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid, err := sessionIDFromToken(h.secret, r.Header.Get("Authorization"))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		sess, err := h.sessions.Get(sid)
		if err != nil {
			http.Error(w, "session expired", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
	})
}

func (h *Handler) session(r *http.Request) *session.Session {
	return r.Context().Value(sessionKey).(*session.Session)
}

type createSessionReq struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type createSessionResp struct {
	SessionID string      `json:"session_id"`
	Token     string      `json:"token"`
	Located   bool        `json:"located"`
	Stores    []storeResp `json:"stores"`
	Wallet    walletResp  `json:"wallet"`
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "CreateSession")
	defer span.End()

	// An empty body is a session without a geolocation reading.
	var req createSessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	sess, err := h.sessions.Create()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// A denied geolocation read means no destination; the session exists but
	// cannot check out until one is provided.
	located := false
	if req.Lat != nil && req.Lng != nil {
		dest, err := domain.NewCoordinate(*req.Lat, *req.Lng)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		sess.Lock()
		sess.SetDestination(dest)
		sess.Unlock()
		located = true
	}

	token, err := mintToken(h.secret, sess.ID, h.tokenTTL)
	if err != nil {
		http.Error(w, "token mint failed", http.StatusInternalServerError)
		return
	}

	h.log.Info("session created", "session_id", sess.ID, "located", located)
	writeJSON(w, http.StatusCreated, createSessionResp{
		SessionID: sess.ID,
		Token:     token,
		Located:   located,
		Stores:    storesResp(sess),
		Wallet:    walletView(sess),
	})
}

func (h *Handler) closeSession(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	h.sessions.Remove(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

type storeResp struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Category string            `json:"category"`
	Location domain.Coordinate `json:"location"`
	Products []productResp     `json:"products"`
}

type productResp struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
}

func (h *Handler) listStores(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	q := r.URL.Query().Get("q")

	sess.Lock()
	stores := sess.Catalog.Search(q)
	sess.Unlock()

	out := make([]storeResp, 0, len(stores))
	for _, s := range stores {
		out = append(out, toStoreResp(s.ID, s.Name, s.Category, s.Location, s.Products))
	}
	writeJSON(w, http.StatusOK, out)
}

type cartResp struct {
	Lines      []cartdomain.CartLine `json:"lines"`
	TotalCents int64                 `json:"total_cents"`
	LineCount  int                   `json:"line_count"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	v := h.carts.View(h.session(r))
	writeJSON(w, http.StatusOK, cartResp(v))
}

type addItemReq struct {
	ProductID string `json:"product_id"`
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "AddCartItem")
	defer span.End()

	var req addItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	v, err := h.carts.AddItem(h.session(r), req.ProductID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResp(v))
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	v := h.carts.RemoveItem(h.session(r), chi.URLParam(r, "productID"))
	writeJSON(w, http.StatusOK, cartResp(v))
}

type suggestionResp struct {
	Ok        bool         `json:"ok"`
	Product   *productResp `json:"product,omitempty"`
	Rationale string       `json:"rationale"`
}

func (h *Handler) getSuggestion(w http.ResponseWriter, r *http.Request) {
	sug := h.orders.Suggest(h.session(r))
	resp := suggestionResp{Ok: sug.Ok, Rationale: sug.Rationale}
	if sug.Ok {
		resp.Product = &productResp{ID: sug.Product.ID, Name: sug.Product.Name, PriceCents: sug.Product.PriceCents}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) acceptSuggestion(w http.ResponseWriter, r *http.Request) {
	p, err := h.orders.AcceptSuggestion(h.session(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, productResp{ID: p.ID, Name: p.Name, PriceCents: p.PriceCents})
}

type checkoutReq struct {
	PaymentMethod string `json:"payment_method"`
}

type orderResp struct {
	OrderID    string               `json:"order_id"`
	Status     domain.Status        `json:"status"`
	TotalCents int64                `json:"total_cents"`
	Payment    domain.PaymentMethod `json:"payment"`
	Position   domain.Coordinate    `json:"position"`
	Progress   float64              `json:"progress"`
	Wallet     walletResp           `json:"wallet"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Checkout")
	defer span.End()

	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	sess := h.session(r)
	// The courier outlives this request; its lifetime is bound to the
	// service, not the request context.
	o, err := h.orders.Checkout(context.WithoutCancel(ctx), sess, req.PaymentMethod)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, orderResp{
		OrderID:    o.ID,
		Status:     o.Status,
		TotalCents: o.TotalCents,
		Payment:    o.Payment,
		Position:   o.Origin,
		Wallet:     walletView(sess),
	})
}

func (h *Handler) trackOrder(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	tr, err := h.orders.Track(sess)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderResp{
		OrderID:    tr.Order.ID,
		Status:     tr.Order.Status,
		TotalCents: tr.Order.TotalCents,
		Payment:    tr.Order.Payment,
		Position:   tr.Position,
		Progress:   tr.Progress,
		Wallet:     walletView(sess),
	})
}

type historyEntryResp struct {
	ID          string                `json:"id"`
	Lines       []cartdomain.CartLine `json:"lines"`
	TotalCents  int64                 `json:"total_cents"`
	Payment     domain.PaymentMethod  `json:"payment"`
	CompletedAt time.Time             `json:"completed_at"`
}

func (h *Handler) acknowledgeOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AcknowledgeOrder")
	defer span.End()

	entry, err := h.orders.Acknowledge(ctx, h.session(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, historyEntryResp{
		ID:          entry.ID,
		Lines:       entry.Lines,
		TotalCents:  entry.TotalCents,
		Payment:     entry.Payment,
		CompletedAt: entry.CompletedAt,
	})
}

func (h *Handler) getHistory(w http.ResponseWriter, r *http.Request) {
	entries := h.orders.LocalHistory(h.session(r))
	out := make([]historyEntryResp, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyEntryResp{
			ID:          e.ID,
			Lines:       e.Lines,
			TotalCents:  e.TotalCents,
			Payment:     e.Payment,
			CompletedAt: e.CompletedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type voiceReq struct {
	Phrase string `json:"phrase"`
}

func (h *Handler) voiceIntent(w http.ResponseWriter, r *http.Request) {
	var req voiceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]voice.Intent{"intent": voice.Interpret(req.Phrase)})
}

type walletResp struct {
	AvailableCents int64 `json:"available_cents"`
	HeldCents      int64 `json:"held_cents"`
}

func walletView(sess *session.Session) walletResp {
	sess.Lock()
	defer sess.Unlock()
	return walletResp{
		AvailableCents: sess.Wallet.AvailableCents(),
		HeldCents:      sess.Wallet.HeldCents(),
	}
}

func storesResp(sess *session.Session) []storeResp {
	sess.Lock()
	defer sess.Unlock()
	stores := sess.Catalog.Stores()
	out := make([]storeResp, 0, len(stores))
	for _, s := range stores {
		out = append(out, toStoreResp(s.ID, s.Name, s.Category, s.Location, s.Products))
	}
	return out
}

func toStoreResp(id, name, category string, loc domain.Coordinate, products []cartdomain.Product) storeResp {
	resp := storeResp{ID: id, Name: name, Category: category, Location: loc}
	for _, p := range products {
		resp.Products = append(resp.Products, productResp{ID: p.ID, Name: p.Name, PriceCents: p.PriceCents})
	}
	return resp
}

// writeError maps the checkout error taxonomy onto response codes so the UI
// can message each precondition distinctly.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wallet.ErrInsufficientFunds):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	case errors.Is(err, application.ErrOrderConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, application.ErrNoDestination):
		http.Error(w, err.Error(), http.StatusPreconditionFailed)
	case errors.Is(err, application.ErrNoActiveOrder):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, application.ErrNotDelivered):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, cartapp.ErrUnknownProduct):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
