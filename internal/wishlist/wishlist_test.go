package wishlist

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/notify"
	"github.com/five82/storefront/internal/persist"
	"github.com/five82/storefront/internal/storage"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func product(id string) catalog.Product {
	return catalog.Product{ID: id, Name: "Product " + id, Price: decimal.RequireFromString("19.99"), InStock: true}
}

func newTestService(t *testing.T, items []Item) (*Service, *notify.Recorder, *storage.MemoryStore, *persist.Writer) {
	t.Helper()
	mem := storage.NewMemory(nil)
	w := persist.NewWriter(mem, nil)
	t.Cleanup(w.Close)
	slot := persist.NewSlot[Item](StorageKey, persist.Config{Store: mem, Writer: w, Validator: catalog.Validator()})
	rec := &notify.Recorder{}
	svc := New(items,
		WithClock(func() time.Time { return fixedNow }),
		OnCommit(Persist(slot)),
		After(Notices(rec)),
	)
	return svc, rec, mem, w
}

func TestReduce_AddRejectsDuplicates(t *testing.T) {
	s := Reduce(State{}, Add{Product: product("1"), AddedAt: fixedNow})
	s = Reduce(s, Add{Product: product("2"), AddedAt: fixedNow})
	again := Reduce(s, Add{Product: product("1"), AddedAt: fixedNow.Add(time.Hour)})

	assert.Equal(t, s, again)
	assert.Equal(t, 2, again.ItemCount)
	assert.Equal(t, fixedNow, again.Items[0].AddedAt)
}

func TestReduce_RemoveAndClear(t *testing.T) {
	s := Reduce(State{}, Add{Product: product("1")})
	s = Reduce(s, Add{Product: product("2")})
	before := s.Clone()

	removed := Reduce(s, Remove{ProductID: "1"})
	require.Equal(t, 1, removed.ItemCount)
	assert.Equal(t, "2", removed.Items[0].Product.ID)
	assert.Equal(t, before, s)

	cleared := Reduce(removed, Clear{})
	assert.Equal(t, 0, cleared.ItemCount)
	assert.Empty(t, cleared.Items)
}

func TestReduce_LoadKeepsFirstOfDuplicates(t *testing.T) {
	first := fixedNow
	s := Reduce(State{}, Load{Items: []Item{
		{Product: product("1"), AddedAt: first},
		{Product: product(""), AddedAt: first},
		{Product: product("1"), AddedAt: first.Add(time.Hour)},
		{Product: product("3"), AddedAt: first},
	}})
	require.Equal(t, 2, s.ItemCount)
	assert.Equal(t, first, s.Items[0].AddedAt)
	assert.Equal(t, "3", s.Items[1].Product.ID)
}

func TestService_DuplicateAddIsRejectedWithNotice(t *testing.T) {
	svc, rec, mem, w := newTestService(t, nil)

	p := product("1")
	p.Name = "Smart Fitness Watch"
	state, added := svc.Add(p)
	require.True(t, added)
	assert.Equal(t, 1, state.ItemCount)
	assert.Equal(t, fixedNow, state.Items[0].AddedAt)
	w.Flush()
	writes := mem.Writes()

	state, added = svc.Add(p)
	assert.False(t, added)
	assert.Equal(t, 1, state.ItemCount)

	notices := rec.Notices()
	require.Len(t, notices, 2)
	assert.Equal(t, notify.Success, notices[0].Kind)
	assert.Equal(t, "Smart Fitness Watch added to wishlist!", notices[0].Message)
	assert.Equal(t, 3*time.Second, notices[0].Duration)
	assert.Equal(t, notify.Error, notices[1].Kind)
	assert.Equal(t, "Item already in wishlist!", notices[1].Message)

	w.Flush()
	assert.Equal(t, writes, mem.Writes(), "rejected add must not write")
}

func TestService_RemoveClearContains(t *testing.T) {
	svc, rec, _, _ := newTestService(t, []Item{{Product: product("1")}, {Product: product("2")}})

	assert.True(t, svc.Contains("1"))
	assert.False(t, svc.Contains("9"))

	svc.Remove("1")
	assert.False(t, svc.Contains("1"))
	svc.Clear()
	assert.Equal(t, 0, svc.ItemCount())
	assert.Equal(t, []string{"Removed from wishlist", "Wishlist cleared"}, rec.Messages())
}

func TestService_Toggle(t *testing.T) {
	svc, rec, _, _ := newTestService(t, nil)

	_, saved := svc.Toggle(product("5"))
	assert.True(t, saved)
	_, saved = svc.Toggle(product("5"))
	assert.False(t, saved)
	assert.Equal(t, []string{"Product 5 added to wishlist!", "Removed from wishlist"}, rec.Messages())
}

func TestService_HydrationRoundTrip(t *testing.T) {
	svc, _, mem, w := newTestService(t, nil)
	svc.Add(product("1"))
	svc.Add(product("4"))
	w.Flush()

	raw, _, _ := mem.Get(StorageKey)
	assert.Contains(t, raw, `"addedAt":"2026-03-14T09:26:53Z"`)

	slot := persist.NewSlot[Item](StorageKey, persist.Config{Store: mem, Validator: catalog.Validator()})
	restored := New(slot.Load())
	require.Equal(t, 2, restored.ItemCount())
	items := restored.Items()
	assert.Equal(t, "1", items[0].Product.ID)
	assert.Equal(t, "4", items[1].Product.ID)
	assert.True(t, items[0].AddedAt.Equal(fixedNow))
}
