package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yubssss/Furniview/internal/domain"
	"github.com/yubssss/Furniview/internal/store"
	"github.com/yubssss/Furniview/pkg/validator"
)

// AddressHandler handles HTTP requests for the address book.
type AddressHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewAddressHandler creates a new address HTTP handler.
func NewAddressHandler(s *store.Store, logger *slog.Logger) *AddressHandler {
	return &AddressHandler{
		store:  s,
		logger: logger,
	}
}

// AddressRequest is the JSON body for creating or updating an address.
type AddressRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Phone     string `json:"phone" validate:"required,min=5,max=30"`
	Address   string `json:"address" validate:"required,min=1,max=500"`
	IsDefault bool   `json:"isDefault"`
}

// List handles GET /api/v1/addresses
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, response{Data: h.store.Addresses()})
}

// Create handles POST /api/v1/addresses
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w, err)
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	addresses := h.store.AddAddress(r.Context(), domain.Address{
		ID:        strconv.FormatInt(time.Now().UnixMilli(), 10),
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
		IsDefault: req.IsDefault,
	})

	writeJSON(w, http.StatusCreated, response{Data: addresses})
}

// Update handles PUT /api/v1/addresses/{addressId}
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w, err)
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	addresses, err := h.store.UpdateAddress(r.Context(), domain.Address{
		ID:        chi.URLParam(r, "addressId"),
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: addresses})
}

// Delete handles DELETE /api/v1/addresses/{addressId}
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.store.DeleteAddress(r.Context(), chi.URLParam(r, "addressId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: addresses})
}

// Select handles POST /api/v1/addresses/{addressId}/select
func (h *AddressHandler) Select(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "addressId")
	if err := h.store.SelectAddress(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: map[string]string{"selectedAddressId": id}})
}

// Selected handles GET /api/v1/addresses/selected
func (h *AddressHandler) Selected(w http.ResponseWriter, r *http.Request) {
	address, err := h.store.SelectedAddress()
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: address})
}
