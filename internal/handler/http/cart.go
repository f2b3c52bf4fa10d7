package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yubssss/Furniview/internal/domain"
	"github.com/yubssss/Furniview/internal/store"
	"github.com/yubssss/Furniview/pkg/validator"
)

// CartHandler handles HTTP requests for cart and favorites endpoints.
type CartHandler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(s *store.Store, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		store:  s,
		logger: logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the product snapshot posted when adding to the cart. A
// repeated add of the same product increments its quantity instead of
// creating a second line.
type AddItemRequest struct {
	ID          string  `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required,min=1,max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Color       string  `json:"color"`
}

// AddFavoriteRequest is the product snapshot posted when saving a favorite.
type AddFavoriteRequest struct {
	ID          string  `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required,min=1,max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// --- Views ---

// CartView is the cart representation returned by all cart endpoints.
type CartView struct {
	Items          domain.Cart `json:"items"`
	ItemCount      int         `json:"itemCount"`
	Total          float64     `json:"total"`
	FormattedTotal string      `json:"formattedTotal"`
}

func cartView(cart domain.Cart) CartView {
	return CartView{
		Items:          cart,
		ItemCount:      cart.ItemCount(),
		Total:          cart.Total(),
		FormattedTotal: domain.FormatPrice(cart.Total()),
	}
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, response{Data: cartView(h.store.Cart())})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w, err)
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	cart := h.store.AddToCart(r.Context(), domain.CartLine{
		ID:          req.ID,
		Name:        req.Name,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Description: req.Description,
		Color:       req.Color,
	})

	writeJSON(w, http.StatusOK, response{Data: cartView(cart)})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.store.RemoveFromCart(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: cartView(cart)})
}

// IncrementItem handles POST /api/v1/cart/items/{productId}/increment
func (h *CartHandler) IncrementItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.store.IncreaseQuantity(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: cartView(cart)})
}

// DecrementItem handles POST /api/v1/cart/items/{productId}/decrement
func (h *CartHandler) DecrementItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.store.DecreaseQuantity(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: cartView(cart)})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.store.ClearCart(r.Context())
	writeJSON(w, http.StatusOK, response{Data: cartView(h.store.Cart())})
}

// GetFavorites handles GET /api/v1/favorites
func (h *CartHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, response{Data: h.store.Favorites()})
}

// AddFavorite handles POST /api/v1/favorites
func (h *CartHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w, err)
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	favorites := h.store.AddToFavorites(r.Context(), domain.Favorite{
		ID:          req.ID,
		Name:        req.Name,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Description: req.Description,
	})

	writeJSON(w, http.StatusOK, response{Data: favorites})
}

// RemoveFavorite handles DELETE /api/v1/favorites/{productId}
func (h *CartHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.store.RemoveFromFavorites(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: favorites})
}
