package cart

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/notify"
	"github.com/five82/storefront/internal/persist"
	"github.com/five82/storefront/internal/storage"
)

func newTestService(t *testing.T, items []LineItem) (*Service, *notify.Recorder, *storage.MemoryStore, *persist.Writer) {
	t.Helper()
	mem := storage.NewMemory(nil)
	w := persist.NewWriter(mem, nil)
	t.Cleanup(w.Close)
	slot := persist.NewSlot[LineItem](StorageKey, persist.Config{Store: mem, Writer: w, Validator: catalog.Validator()})
	rec := &notify.Recorder{}
	svc := New(items, OnCommit(Persist(slot)), After(Notices(rec)))
	return svc, rec, mem, w
}

func TestService_AddNotifiesWithProductName(t *testing.T) {
	svc, rec, _, _ := newTestService(t, nil)

	p := product("1", "299.99")
	p.Name = "Premium Wireless Headphones"
	state, err := svc.Add(p, 2, WithColor("Black"))
	require.NoError(t, err)
	requireTotal(t, state, "599.98", 2)
	assert.Equal(t, "Black", state.Items[0].SelectedColor)

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, notify.Success, last.Kind)
	assert.Equal(t, "Premium Wireless Headphones added to cart!", last.Message)
	assert.Equal(t, 3*time.Second, last.Duration)
}

func TestService_AddRejectsNonPositiveQuantity(t *testing.T) {
	svc, rec, mem, w := newTestService(t, nil)

	for _, qty := range []int{0, -1} {
		state, err := svc.Add(product("1", "1"), qty)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Empty(t, state.Items)
	}
	w.Flush()
	assert.Empty(t, rec.Notices())
	assert.Equal(t, 0, mem.Writes())
}

func TestService_NoticePolicy(t *testing.T) {
	svc, rec, _, _ := newTestService(t, nil)

	_, err := svc.Add(product("1", "10"), 1, WithSize("M"))
	require.NoError(t, err)
	rec.Reset()

	svc.UpdateQuantity("1", 4)
	svc.UpdateLineQuantity(Key{ProductID: "1", Size: "M"}, 2)
	assert.Empty(t, rec.Notices(), "quantity updates are silent")

	svc.RemoveLine(Key{ProductID: "1", Size: "M"})
	svc.Remove("1")
	svc.Clear()
	assert.Equal(t, []string{"Item removed from cart", "Item removed from cart", "Cart cleared"}, rec.Messages())
}

func TestService_PersistsItemsOnly(t *testing.T) {
	svc, _, mem, w := newTestService(t, nil)

	_, err := svc.Add(product("A", "10"), 2, WithSize("M"), WithColor("Black"))
	require.NoError(t, err)
	w.Flush()

	raw, ok, err := mem.Get(StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"quantity":2`)
	assert.Contains(t, raw, `"selectedSize":"M"`)
	assert.Contains(t, raw, `"selectedColor":"Black"`)
	assert.NotContains(t, raw, "itemCount")
	assert.NotContains(t, raw, "Total")
}

func TestService_HydrationRoundTrip(t *testing.T) {
	svc, _, mem, w := newTestService(t, nil)

	tee := product("4", "29.99")
	_, _ = svc.Add(tee, 1, WithSize("S"))
	_, _ = svc.Add(tee, 2, WithSize("M"), WithColor("Navy"))
	_, _ = svc.Add(product("5", "1299.99"), 1)
	want := svc.State()
	w.Flush()

	slot := persist.NewSlot[LineItem](StorageKey, persist.Config{Store: mem, Validator: catalog.Validator()})
	restored := New(slot.Load())
	got := restored.State()

	require.Len(t, got.Items, len(want.Items))
	for i := range want.Items {
		assert.Equal(t, want.Items[i].Key(), got.Items[i].Key())
		assert.Equal(t, want.Items[i].Quantity, got.Items[i].Quantity)
		assert.True(t, want.Items[i].Product.Price.Equal(got.Items[i].Product.Price))
	}
	assert.True(t, want.Total.Equal(got.Total), "total %s vs %s", want.Total, got.Total)
	assert.Equal(t, want.ItemCount, got.ItemCount)
	assert.Equal(t, 4, restored.ItemCount())
}

func TestService_SnapshotsAreIsolated(t *testing.T) {
	svc, _, _, _ := newTestService(t, nil)
	_, _ = svc.Add(product("A", "10"), 1, WithSize("S"))

	items := svc.Items()
	items[0].Quantity = 99
	items[0].Product.Sizes[0] = "XXL"

	line, ok := svc.State().Line(Key{ProductID: "A", Size: "S"})
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, "S", line.Product.Sizes[0])
}

func TestService_AfterEffectMayReadCart(t *testing.T) {
	var svc *Service
	var seen []int
	svc = New(nil, After(func(Change) { seen = append(seen, svc.ItemCount()) }))

	_, _ = svc.Add(product("A", "1"), 2)
	_, _ = svc.Add(product("A", "1"), 1)
	assert.Equal(t, []int{2, 3}, seen)
}

func TestService_ConcurrentAddsAreSerialized(t *testing.T) {
	svc, _, _, _ := newTestService(t, nil)
	p := product("A", "0.10")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Add(p, 1)
			_ = svc.Total()
		}()
	}
	wg.Wait()

	state := svc.State()
	require.Len(t, state.Items, 1)
	requireTotal(t, state, "5", 50)
}

func TestNew_NormalizesHydratedItems(t *testing.T) {
	svc := New([]LineItem{
		{Product: product("A", "10"), Quantity: 1},
		{Product: product("A", "10"), Quantity: 1},
		{Product: product("B", "10"), Quantity: -2},
	})
	requireTotal(t, svc.State(), "20", 2)
	assert.True(t, svc.Has("A"))
	assert.False(t, svc.Has("B"))
	assert.True(t, svc.Total().Equal(svc.State().Total))
}
