package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/yubssss/Furniview/internal/domain"
	apperrors "github.com/yubssss/Furniview/pkg/errors"
)

// Storage keys. Each key holds a full JSON serialization of its collection,
// except KeySelectedAddress which holds the raw address ID string.
const (
	KeyCart            = "cart"
	KeyFavorites       = "favorites"
	KeyAddresses       = "addresses"
	KeySelectedAddress = "selectedAddressId"
	KeyPaymentCards    = "paymentCards"
	KeyOrders          = "orders"
)

// EventPublisher publishes storefront domain events. Publish failures must be
// handled by the implementation's caller; the store treats them as fail-open.
type EventPublisher interface {
	CartUpdated(ctx context.Context, cart domain.Cart) error
	CartCleared(ctx context.Context) error
	OrderPlaced(ctx context.Context, order domain.Order) error
	OrderCancelled(ctx context.Context, order domain.Order) error
}

// Store is the single source of truth for the device user's cart, favorites,
// addresses, saved cards, and order history. It is constructed once at
// startup and shared by reference across all handlers; no screen holds a
// private copy.
//
// All mutations commit synchronously against in-memory state under the mutex,
// then enqueue a full snapshot of the owning collection on the write-behind
// writer. Callers never wait for durable writes.
type Store struct {
	writer *Writer
	events EventPublisher
	logger *slog.Logger

	mu                sync.Mutex
	loaded            bool
	cart              domain.Cart
	favorites         domain.Favorites
	addresses         []domain.Address
	selectedAddressID string
	cards             []domain.PaymentCard
	selectedCardID    int64 // 0 selects the cash-on-delivery sentinel
	orders            []domain.Order
}

// New creates the session store. Call Load before serving traffic.
func New(writer *Writer, events EventPublisher, logger *slog.Logger) *Store {
	return &Store{
		writer: writer,
		events: events,
		logger: logger,
	}
}

// Load hydrates all collections from the persistent store, then opens the
// write-behind gate. It must complete before the in-memory collections are
// authoritative.
//
// Missing keys start their collection empty (the address book is seeded with
// the default entry). Unreadable or corrupt values are logged and degrade to
// empty collections rather than failing startup.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return errors.New("store: already loaded")
	}

	s.loadJSON(ctx, KeyCart, &s.cart)
	s.loadJSON(ctx, KeyFavorites, &s.favorites)
	s.loadJSON(ctx, KeyPaymentCards, &s.cards)
	s.loadJSON(ctx, KeyOrders, &s.orders)

	if found := s.loadJSON(ctx, KeyAddresses, &s.addresses); !found {
		// First run on this device: seed the default delivery address so
		// checkout always has one to show.
		s.addresses = []domain.Address{domain.DefaultAddress()}
	}

	if raw, err := s.writer.kv.Get(ctx, KeySelectedAddress); err == nil {
		s.selectedAddressID = string(raw)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.logger.Warn("failed to load selected address id, starting unselected",
			slog.String("error", err.Error()),
		)
	}

	s.loaded = true
	s.writer.Open()

	s.logger.InfoContext(ctx, "session store loaded",
		slog.Int("cart_lines", len(s.cart)),
		slog.Int("favorites", len(s.favorites)),
		slog.Int("addresses", len(s.addresses)),
		slog.Int("payment_cards", len(s.cards)),
		slog.Int("orders", len(s.orders)),
	)

	return nil
}

// loadJSON hydrates one collection. It reports whether a durable value
// existed; decode and read failures degrade to the empty collection.
func (s *Store) loadJSON(ctx context.Context, key string, dst any) bool {
	raw, err := s.writer.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("failed to load collection, starting empty",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.Warn("corrupt collection in persistent store, starting empty",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}

// Close flushes pending writes and stops the write-behind writer.
func (s *Store) Close() {
	s.writer.Close()
}

// Flush synchronously drains pending durable writes. Exposed for shutdown
// and tests.
func (s *Store) Flush(ctx context.Context) {
	s.writer.Flush(ctx)
}

// persist marshals the value and schedules it as the next durable snapshot
// for key. Must be called with s.mu held so the snapshot reflects the state
// the mutation just committed.
func (s *Store) persist(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		// Domain types always marshal; this guards future field additions.
		s.logger.Error("failed to marshal collection snapshot",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return
	}
	s.writer.Enqueue(key, data)
}

// publish runs the event callback and logs a failure without surfacing it:
// domain events are best-effort, mutations never fail on publish errors.
func (s *Store) publish(ctx context.Context, eventType string, fn func() error) {
	if err := fn(); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
	}
}
