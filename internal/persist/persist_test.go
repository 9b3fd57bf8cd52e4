package persist

import (
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/five82/storefront/internal/storage"
)

type entry struct {
	ID  string `json:"id" validate:"required"`
	Qty int    `json:"qty" validate:"gte=1"`
}

type gatedStore struct {
	*storage.MemoryStore
	entered chan string
	release chan struct{}
}

func (g *gatedStore) Set(key, value string) error {
	g.entered <- value
	<-g.release
	return g.MemoryStore.Set(key, value)
}

func TestWriter_CoalescesPendingWrites(t *testing.T) {
	g := &gatedStore{
		MemoryStore: storage.NewMemory(nil),
		entered:     make(chan string, 8),
		release:     make(chan struct{}),
	}
	w := NewWriter(g, nil)
	defer w.Close()

	w.Enqueue("cart", "1")
	require.Equal(t, "1", <-g.entered)

	w.Enqueue("cart", "2")
	w.Enqueue("cart", "3")
	close(g.release)
	w.Flush()

	assert.Equal(t, 2, g.Writes())
	v, ok, err := g.Get("cart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestWriter_FailureIsLoggedAndDropped(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mem := storage.NewMemory(nil)
	mem.FailSet = errors.New("quota exceeded")

	w := NewWriter(mem, zap.New(core))
	w.Enqueue("cart", "[]")
	w.Flush()

	require.Equal(t, 1, logs.FilterMessage("persist write failed").Len())

	mem.FailSet = nil
	w.Enqueue("cart", "[1]")
	w.Close()

	v, _, _ := mem.Get("cart")
	assert.Equal(t, "[1]", v)
}

func TestWriter_CloseIsIdempotentAndWritesSynchronouslyAfter(t *testing.T) {
	mem := storage.NewMemory(nil)
	w := NewWriter(mem, nil)
	w.Close()
	w.Close()

	w.Enqueue("wishlist", "[]")
	v, ok, _ := mem.Get("wishlist")
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
	w.Flush()
}

func TestWriter_WriteAfterCloseLandsAfterDrain(t *testing.T) {
	g := &gatedStore{
		MemoryStore: storage.NewMemory(nil),
		entered:     make(chan string, 8),
		release:     make(chan struct{}),
	}
	w := NewWriter(g, nil)

	w.Enqueue("cart", "old")
	require.Equal(t, "old", <-g.entered)

	closed := make(chan struct{})
	go func() {
		w.Close()
		close(closed)
	}()
	require.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return w.closed
	}, time.Second, time.Millisecond)

	enqueued := make(chan struct{})
	go func() {
		w.Enqueue("cart", "new")
		close(enqueued)
	}()

	// Give a premature synchronous write the chance to overtake.
	time.Sleep(20 * time.Millisecond)
	close(g.release)

	<-closed
	<-enqueued
	require.Equal(t, "new", <-g.entered)

	v, ok, err := g.Get("cart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", v)
	assert.Equal(t, 2, g.Writes())
}

func TestSlot_RoundTrip(t *testing.T) {
	mem := storage.NewMemory(nil)
	w := NewWriter(mem, nil)
	defer w.Close()

	slot := NewSlot[entry]("cart", Config{Store: mem, Writer: w})
	slot.Save([]entry{{ID: "a", Qty: 2}, {ID: "b", Qty: 1}})
	w.Flush()

	fresh := NewSlot[entry]("cart", Config{Store: mem})
	assert.Equal(t, []entry{{ID: "a", Qty: 2}, {ID: "b", Qty: 1}}, fresh.Load())
	assert.Equal(t, "cart", fresh.Key())
}

func TestSlot_SaveNilWritesEmptyArray(t *testing.T) {
	mem := storage.NewMemory(nil)
	NewSlot[entry]("cart", Config{Store: mem}).Save(nil)

	v, ok, _ := mem.Get("cart")
	require.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestSlot_LoadDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name  string
		store *storage.MemoryStore
	}{
		{"missing", storage.NewMemory(nil)},
		{"malformed", storage.NewMemory(map[string]string{"cart": "{not json"})},
		{"not an array", storage.NewMemory(map[string]string{"cart": `{"id":"a"}`})},
		{"read error", func() *storage.MemoryStore {
			m := storage.NewMemory(map[string]string{"cart": "[]"})
			m.FailGet = errors.New("disk gone")
			return m
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewSlot[entry]("cart", Config{Store: tt.store}).Load()
			assert.Empty(t, got)
		})
	}
}

func TestSlot_LoadDropsBadEntries(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mem := storage.NewMemory(map[string]string{
		"cart": `[{"id":"a","qty":1},{"id":"","qty":1},{"id":"c","qty":0},{"id":7},{"id":"d","qty":3}]`,
	})

	slot := NewSlot[entry]("cart", Config{
		Store:     mem,
		Logger:    zap.New(core),
		Validator: validator.New(),
	})
	got := slot.Load()

	assert.Equal(t, []entry{{ID: "a", Qty: 1}, {ID: "d", Qty: 3}}, got)
	assert.Equal(t, 2, logs.FilterMessage("dropping invalid entry").Len())
	assert.Equal(t, 1, logs.FilterMessage("dropping undecodable entry").Len())
}
