package persist

import (
	"sync"

	"go.uber.org/zap"

	"github.com/five82/storefront/internal/storage"
)

// Writer performs storage writes on a background goroutine. Enqueue never
// waits for I/O. Pending values are coalesced per key, so only the newest
// value for a key is written. Failures are logged and dropped; the next
// Enqueue for the key writes the full value again.
type Writer struct {
	store  storage.Store
	logger *zap.Logger

	mu       sync.Mutex
	cond     *sync.Cond
	pending  map[string]string
	order    []string
	inflight bool
	closed   bool
	done     chan struct{}
}

// NewWriter starts a writer for store. Call Close to stop it.
func NewWriter(store storage.Store, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Writer{
		store:   store,
		logger:  logger,
		pending: make(map[string]string),
		done:    make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	go w.run()
	return w
}

// Enqueue schedules value to be written under key. After Close the write
// happens synchronously on the caller's goroutine, once the final batch has
// landed.
func (w *Writer) Enqueue(key, value string) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		w.write(key, value)
		return
	}
	if _, queued := w.pending[key]; !queued {
		w.order = append(w.order, key)
	}
	w.pending[key] = value
	w.mu.Unlock()
	w.cond.Broadcast()
}

// Flush blocks until every value enqueued before the call has been written
// (or has failed).
func (w *Writer) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for len(w.pending) > 0 || w.inflight {
		w.cond.Wait()
	}
}

// Close drains pending writes and stops the goroutine. It is safe to call
// more than once.
func (w *Writer) Close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	w.cond.Broadcast()
	<-w.done
}

func (w *Writer) run() {
	defer close(w.done)
	for {
		w.mu.Lock()
		for len(w.pending) == 0 && !w.closed {
			w.cond.Wait()
		}
		if len(w.pending) == 0 && w.closed {
			w.mu.Unlock()
			return
		}
		batch, order := w.pending, w.order
		w.pending = make(map[string]string, len(batch))
		w.order = nil
		w.inflight = true
		w.mu.Unlock()

		for _, key := range order {
			w.write(key, batch[key])
		}

		w.mu.Lock()
		w.inflight = false
		w.mu.Unlock()
		w.cond.Broadcast()
	}
}

func (w *Writer) write(key, value string) {
	if err := w.store.Set(key, value); err != nil {
		w.logger.Warn("persist write failed",
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}
	w.logger.Debug("persisted", zap.String("key", key), zap.Int("bytes", len(value)))
}
