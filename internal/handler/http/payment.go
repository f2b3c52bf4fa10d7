package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yubssss/Furniview/internal/domain"
	"github.com/yubssss/Furniview/internal/store"
	apperrors "github.com/yubssss/Furniview/pkg/errors"
	"github.com/yubssss/Furniview/pkg/validator"
)

// PaymentHandler handles HTTP requests for saved cards and the payment
// method selection.
type PaymentHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewPaymentHandler creates a new payment HTTP handler.
func NewPaymentHandler(s *store.Store, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		store:  s,
		logger: logger,
	}
}

// AddCardRequest carries the raw card fields from the add-card form. The
// values are validated and discarded; only the derived brand and masked
// number are stored.
type AddCardRequest struct {
	Number string `json:"number" validate:"required"`
	Expiry string `json:"expiry" validate:"required"`
	CVV    string `json:"cvv" validate:"required"`
}

// SelectedPaymentView describes the active payment method.
type SelectedPaymentView struct {
	Method string              `json:"method"`
	Card   *domain.PaymentCard `json:"card,omitempty"`
}

// List handles GET /api/v1/payment-methods
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, response{Data: h.store.Cards()})
}

// AddCard handles POST /api/v1/payment-methods
func (h *PaymentHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	var req AddCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w, err)
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	card, err := h.store.AddCard(r.Context(), domain.CardInput{
		Number: req.Number,
		Expiry: req.Expiry,
		CVV:    req.CVV,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: card})
}

// DeleteCard handles DELETE /api/v1/payment-methods/{cardId}
func (h *PaymentHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := cardID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.store.DeleteCard(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: h.store.Cards()})
}

// SelectCard handles POST /api/v1/payment-methods/{cardId}/select
func (h *PaymentHandler) SelectCard(w http.ResponseWriter, r *http.Request) {
	id, err := cardID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if err := h.store.SelectCard(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.writeSelected(w)
}

// SelectCash handles POST /api/v1/payment-methods/cash/select
func (h *PaymentHandler) SelectCash(w http.ResponseWriter, r *http.Request) {
	h.store.SelectCashOnDelivery(r.Context())
	h.writeSelected(w)
}

// Selected handles GET /api/v1/payment-methods/selected
func (h *PaymentHandler) Selected(w http.ResponseWriter, r *http.Request) {
	h.writeSelected(w)
}

func (h *PaymentHandler) writeSelected(w http.ResponseWriter) {
	method, card := h.store.SelectedPayment()
	writeJSON(w, http.StatusOK, response{Data: SelectedPaymentView{Method: method, Card: card}})
}

func cardID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "cardId"), 10, 64)
	if err != nil {
		return 0, apperrors.InvalidInput("cardId must be a numeric card ID")
	}
	return id, nil
}
