package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yubssss/Furniview/internal/domain"
	"github.com/yubssss/Furniview/internal/store"
)

// OrderHandler handles checkout and order history endpoints.
type OrderHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewOrderHandler creates a new order HTTP handler.
func NewOrderHandler(s *store.Store, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		store:  s,
		logger: logger,
	}
}

// OrderView augments an order with its display price.
type OrderView struct {
	domain.Order
	FormattedTotal string `json:"formattedTotal"`
}

func orderView(o domain.Order) OrderView {
	return OrderView{Order: o, FormattedTotal: domain.FormatPrice(o.Total)}
}

// Checkout handles POST /api/v1/checkout: it places an order from the
// current cart, selected address, and selected payment method.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	order, err := h.store.PlaceOrder(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, response{Data: orderView(order)})
}

// List handles GET /api/v1/orders?status=On-going|Completed|Cancelled|All
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.Orders(r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, orderView(o))
	}
	writeJSON(w, http.StatusOK, response{Data: views})
}

// Get handles GET /api/v1/orders/{orderId}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.store.Order(chi.URLParam(r, "orderId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: orderView(order)})
}

// Cancel handles POST /api/v1/orders/{orderId}/cancel
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	order, err := h.store.CancelOrder(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: orderView(order)})
}
