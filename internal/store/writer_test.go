package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yubssss/Furniview/internal/repository/memory"
	apperrors "github.com/yubssss/Furniview/pkg/errors"
)

// failKV fails every write while still honoring reads.
type failKV struct {
	*memory.KV
}

func (f *failKV) Set(_ context.Context, _ string, _ []byte) error {
	return errors.New("kv unavailable")
}

func (f *failKV) Remove(_ context.Context, _ string) error {
	return errors.New("kv unavailable")
}

func TestWriter_GatedUntilOpen(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	w := NewWriter(kv, testLogger())
	t.Cleanup(w.Close)

	// Enqueues before Open are dropped, protecting durable state from the
	// pre-load empty snapshot.
	w.Enqueue("cart", []byte(`[]`))
	w.Flush(ctx)
	assert.Equal(t, 0, kv.Len())

	w.Open()
	w.Enqueue("cart", []byte(`[{"id":"p-1"}]`))
	w.Flush(ctx)

	raw, err := kv.Get(ctx, "cart")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"p-1"}]`, string(raw))
}

func TestWriter_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	w := NewWriter(kv, testLogger())
	t.Cleanup(w.Close)
	w.Open()

	// Rapid enqueues for the same key coalesce; only the latest snapshot is
	// guaranteed to be written, and the final durable value is always the
	// last one enqueued.
	for i := 0; i < 100; i++ {
		w.Enqueue("cart", []byte(`["stale"]`))
	}
	w.Enqueue("cart", []byte(`["final"]`))
	w.Flush(ctx)

	raw, err := kv.Get(ctx, "cart")
	require.NoError(t, err)
	assert.JSONEq(t, `["final"]`, string(raw))
}

func TestWriter_RemoveSupersedesSet(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Set(ctx, "cart", []byte(`["old"]`)))

	w := NewWriter(kv, testLogger())
	t.Cleanup(w.Close)
	w.Open()

	w.Enqueue("cart", []byte(`["new"]`))
	w.EnqueueRemove("cart")
	w.Flush(ctx)

	_, err := kv.Get(ctx, "cart")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWriter_FailOpen(t *testing.T) {
	ctx := context.Background()
	kv := &failKV{KV: memory.New()}
	w := NewWriter(kv, testLogger())
	t.Cleanup(w.Close)
	w.Open()

	// A failed write is dropped, not retried: the pending queue must be
	// empty afterwards so the flusher does not spin on a dead store.
	w.Enqueue("cart", []byte(`[]`))
	w.Flush(ctx)

	w.mu.Lock()
	pending := len(w.pending)
	w.mu.Unlock()
	assert.Equal(t, 0, pending)
}

func TestWriter_CloseFlushesPending(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	w := NewWriter(kv, testLogger())
	w.Open()

	w.Enqueue("orders", []byte(`[{"id":"o-1"}]`))
	w.Close()

	raw, err := kv.Get(ctx, "orders")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"o-1"}]`, string(raw))

	// Enqueue after close is a logged no-op.
	w.Enqueue("orders", []byte(`[]`))
	w.Close()
}
