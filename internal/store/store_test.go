package store

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yubssss/Furniview/internal/domain"
	"github.com/yubssss/Furniview/internal/repository/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakePublisher records published events for assertions.
type fakePublisher struct {
	mu     sync.Mutex
	events []string
}

func (f *fakePublisher) record(event string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) CartUpdated(_ context.Context, _ domain.Cart) error {
	return f.record("cart.updated")
}

func (f *fakePublisher) CartCleared(_ context.Context) error {
	return f.record("cart.cleared")
}

func (f *fakePublisher) OrderPlaced(_ context.Context, _ domain.Order) error {
	return f.record("order.placed")
}

func (f *fakePublisher) OrderCancelled(_ context.Context, _ domain.Order) error {
	return f.record("order.cancelled")
}

func (f *fakePublisher) published() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

func newTestStore(t *testing.T) (*Store, *memory.KV, *fakePublisher) {
	t.Helper()

	kv := memory.New()
	writer := NewWriter(kv, testLogger())
	events := &fakePublisher{}
	s := New(writer, events, testLogger())
	require.NoError(t, s.Load(context.Background()))
	t.Cleanup(s.Close)
	return s, kv, events
}

func chair() domain.CartLine {
	return domain.CartLine{
		ID:       "p-1",
		Name:     "Minimalist Chair",
		Price:    2500,
		Image:    "https://cdn.example.com/chair.png",
		Category: "Chairs",
		Color:    "Walnut",
	}
}

func lamp() domain.CartLine {
	return domain.CartLine{
		ID:       "p-2",
		Name:     "Arc Floor Lamp",
		Price:    4999.50,
		Image:    "https://cdn.example.com/lamp.png",
		Category: "Lighting",
	}
}

func TestLoad_SeedsDefaultAddress(t *testing.T) {
	s, _, _ := newTestStore(t)

	addresses := s.Addresses()
	require.Len(t, addresses, 1)
	assert.Equal(t, domain.DefaultAddress(), addresses[0])
	assert.True(t, addresses[0].IsDefault)
}

func TestLoad_Twice(t *testing.T) {
	s, _, _ := newTestStore(t)
	assert.Error(t, s.Load(context.Background()))
}

func TestLoad_RestoresPersistedState(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()

	first := New(NewWriter(kv, testLogger()), &fakePublisher{}, testLogger())
	require.NoError(t, first.Load(ctx))

	first.AddToCart(ctx, chair())
	first.AddToCart(ctx, chair())
	first.AddToCart(ctx, lamp())
	first.AddToFavorites(ctx, domain.Favorite{ID: "p-9", Name: "Oak Shelf", Price: 1200})
	addresses := first.AddAddress(ctx, domain.Address{ID: "1700000000000", Name: "Ana Cruz", Phone: "0917 555 0101", Address: "12 Mabini St, Quezon City"})
	require.NoError(t, first.SelectAddress(ctx, addresses[1].ID))
	first.Close()

	// A fresh store over the same KV sees everything the first one committed.
	second := New(NewWriter(kv, testLogger()), &fakePublisher{}, testLogger())
	require.NoError(t, second.Load(ctx))
	t.Cleanup(second.Close)

	cart := second.Cart()
	require.Len(t, cart, 2)
	assert.Equal(t, 2, cart[0].Quantity)
	assert.Equal(t, 1, cart[1].Quantity)
	assert.InDelta(t, 2*2500+4999.50, second.Total(), 0.001)

	require.Len(t, second.Favorites(), 1)
	require.Len(t, second.Addresses(), 2)

	selected, err := second.SelectedAddress()
	require.NoError(t, err)
	assert.Equal(t, "Ana Cruz", selected.Name)
}

func TestLoad_CorruptValueStartsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Set(ctx, KeyCart, []byte("{not json")))

	s := New(NewWriter(kv, testLogger()), &fakePublisher{}, testLogger())
	require.NoError(t, s.Load(ctx))
	t.Cleanup(s.Close)

	assert.Empty(t, s.Cart())
}

func TestLoad_KeepsExistingAddresses(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	saved := []domain.Address{{ID: "42", Name: "Saved Entry", Address: "9 Rizal Ave"}}
	data, err := json.Marshal(saved)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, KeyAddresses, data))

	s := New(NewWriter(kv, testLogger()), &fakePublisher{}, testLogger())
	require.NoError(t, s.Load(ctx))
	t.Cleanup(s.Close)

	// The default seed only applies when no address book was ever persisted.
	addresses := s.Addresses()
	require.Len(t, addresses, 1)
	assert.Equal(t, "Saved Entry", addresses[0].Name)
}

func TestPersist_WritesFullSnapshots(t *testing.T) {
	ctx := context.Background()
	s, kv, _ := newTestStore(t)

	s.AddToCart(ctx, chair())
	s.AddToCart(ctx, lamp())
	s.Flush(ctx)

	raw, err := kv.Get(ctx, KeyCart)
	require.NoError(t, err)

	var persisted domain.Cart
	require.NoError(t, json.Unmarshal(raw, &persisted))
	require.Len(t, persisted, 2)
	assert.Equal(t, "Minimalist Chair", persisted[0].Name)
}
