package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/yubssss/Furniview/internal/repository"
)

// flushTimeout bounds a single durable write issued by the flusher.
const flushTimeout = 5 * time.Second

var (
	writeBehindFlushes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_writebehind_flushes_total",
			Help: "Total number of snapshots flushed to the persistent store",
		},
		[]string{"key"},
	)

	writeBehindErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_writebehind_errors_total",
			Help: "Total number of failed durable writes (fail-open, not retried)",
		},
		[]string{"key"},
	)

	writeBehindSuppressed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_writebehind_suppressed_total",
			Help: "Snapshots dropped because they were enqueued before the initial load completed",
		},
	)

	writeBehindPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_writebehind_pending",
			Help: "Number of keys with a pending snapshot awaiting flush",
		},
	)
)

// pendingWrite is the latest snapshot scheduled for a key. A later enqueue
// for the same key replaces it (last-write-wins); the superseded snapshot is
// never written.
type pendingWrite struct {
	value  []byte
	remove bool
}

// Writer is the write-behind half of the session store: mutations commit in
// memory synchronously and enqueue a full-collection snapshot here, and a
// single flusher goroutine writes the latest snapshot per key to the KV store.
//
// Enqueues are suppressed until Open is called, which the store does after
// the initial load completes. This gates the first reactive write cycle so
// pre-load empty collections can never clobber durable state.
//
// Flush errors are logged and counted, never retried, and never rolled back
// into memory (fail-open).
type Writer struct {
	kv     repository.KV
	logger *slog.Logger

	mu      sync.Mutex
	pending map[string]pendingWrite
	open    bool
	closed  bool

	// flushMu serializes drain cycles between the flusher goroutine, Flush,
	// and Close.
	flushMu sync.Mutex

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
}

// NewWriter creates a write-behind writer over the given KV store and starts
// its flusher goroutine. The writer starts gated; call Open after the initial
// load.
func NewWriter(kv repository.KV, logger *slog.Logger) *Writer {
	w := &Writer{
		kv:      kv,
		logger:  logger,
		pending: make(map[string]pendingWrite),
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

// Open lifts the load gate. Snapshots enqueued from now on will be flushed.
func (w *Writer) Open() {
	w.mu.Lock()
	w.open = true
	w.mu.Unlock()
}

// Enqueue schedules the snapshot as the next durable value for key. An
// earlier pending snapshot for the same key is superseded, not written.
func (w *Writer) Enqueue(key string, snapshot []byte) {
	w.schedule(key, pendingWrite{value: snapshot})
}

// EnqueueRemove schedules deletion of the key.
func (w *Writer) EnqueueRemove(key string) {
	w.schedule(key, pendingWrite{remove: true})
}

func (w *Writer) schedule(key string, pw pendingWrite) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.logger.Warn("write-behind enqueue after close, dropping",
			slog.String("key", key),
		)
		return
	}
	if !w.open {
		w.mu.Unlock()
		writeBehindSuppressed.Inc()
		w.logger.Debug("write-behind gated until initial load, dropping snapshot",
			slog.String("key", key),
		)
		return
	}
	w.pending[key] = pw
	writeBehindPending.Set(float64(len(w.pending)))
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Flush synchronously drains all pending snapshots. Used at shutdown and in
// tests; normal operation relies on the flusher goroutine.
func (w *Writer) Flush(ctx context.Context) {
	w.drain(ctx)
}

// Close flushes pending snapshots and stops the flusher goroutine.
func (w *Writer) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()

	close(w.quit)
	<-w.done

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	w.drain(ctx)
}

func (w *Writer) run() {
	defer close(w.done)
	for {
		select {
		case <-w.wake:
			ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
			w.drain(ctx)
			cancel()
		case <-w.quit:
			return
		}
	}
}

// drain writes the latest pending snapshot for every key. It loops until no
// pending writes remain, so snapshots enqueued during a drain cycle are
// picked up before it returns.
func (w *Writer) drain(ctx context.Context) {
	w.flushMu.Lock()
	defer w.flushMu.Unlock()

	for {
		w.mu.Lock()
		if len(w.pending) == 0 {
			w.mu.Unlock()
			return
		}
		batch := w.pending
		w.pending = make(map[string]pendingWrite)
		writeBehindPending.Set(0)
		w.mu.Unlock()

		for key, pw := range batch {
			var err error
			if pw.remove {
				err = w.kv.Remove(ctx, key)
			} else {
				err = w.kv.Set(ctx, key, pw.value)
			}

			if err != nil {
				// Fail-open: the in-memory state stands, the change simply
				// did not persist. No retry.
				writeBehindErrors.WithLabelValues(key).Inc()
				w.logger.Error("durable write failed, change will not persist",
					slog.String("key", key),
					slog.String("error", err.Error()),
				)
				continue
			}
			writeBehindFlushes.WithLabelValues(key).Inc()
		}
	}
}
