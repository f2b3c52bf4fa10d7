package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yubssss/Furniview/internal/store"
	"github.com/yubssss/Furniview/pkg/health"
	"github.com/yubssss/Furniview/pkg/middleware"
)

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	sessionStore *store.Store,
	healthHandler *health.Handler,
	logger *slog.Logger,
	pprofCIDRs []string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(CORS)

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, pprofCIDRs, logger)

	cartHandler := NewCartHandler(sessionStore, logger)
	addressHandler := NewAddressHandler(sessionStore, logger)
	paymentHandler := NewPaymentHandler(sessionStore, logger)
	orderHandler := NewOrderHandler(sessionStore, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)

			r.Post("/items", cartHandler.AddItem)
			r.Delete("/items/{productId}", cartHandler.RemoveItem)
			r.Post("/items/{productId}/increment", cartHandler.IncrementItem)
			r.Post("/items/{productId}/decrement", cartHandler.DecrementItem)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", cartHandler.GetFavorites)
			r.Post("/", cartHandler.AddFavorite)
			r.Delete("/{productId}", cartHandler.RemoveFavorite)
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", addressHandler.List)
			r.Post("/", addressHandler.Create)
			r.Get("/selected", addressHandler.Selected)
			r.Put("/{addressId}", addressHandler.Update)
			r.Delete("/{addressId}", addressHandler.Delete)
			r.Post("/{addressId}/select", addressHandler.Select)
		})

		r.Route("/payment-methods", func(r chi.Router) {
			r.Get("/", paymentHandler.List)
			r.Post("/", paymentHandler.AddCard)
			r.Get("/selected", paymentHandler.Selected)
			r.Post("/cash/select", paymentHandler.SelectCash)
			r.Delete("/{cardId}", paymentHandler.DeleteCard)
			r.Post("/{cardId}/select", paymentHandler.SelectCard)
		})

		r.Post("/checkout", orderHandler.Checkout)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orderHandler.List)
			r.Get("/{orderId}", orderHandler.Get)
			r.Post("/{orderId}/cancel", orderHandler.Cancel)
		})
	})

	return r
}
