package shop

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/storefront/internal/cart"
	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/notify"
	"github.com/five82/storefront/internal/storage"
)

func openAt(t *testing.T, dir string, sink notify.Sink) *Shop {
	t.Helper()
	s, err := Open(context.Background(), Options{DataDir: dir, Notices: sink})
	require.NoError(t, err)
	return s
}

func TestOpen_HydratesAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s := openAt(t, dir, nil)
	tee, err := s.Catalog.Lookup("4")
	require.NoError(t, err)
	headphones, err := s.Catalog.Lookup("1")
	require.NoError(t, err)

	_, err = s.Cart.Add(tee, 2, cart.WithSize("M"), cart.WithColor("Navy"))
	require.NoError(t, err)
	_, err = s.Cart.Add(headphones, 1, cart.WithColor("Black"))
	require.NoError(t, err)
	s.Wishlist.Add(headphones)
	want := s.Cart.State()
	s.Close()

	reopened := openAt(t, dir, nil)
	defer reopened.Close()

	got := reopened.Cart.State()
	require.Len(t, got.Items, 2)
	for i := range want.Items {
		assert.Equal(t, want.Items[i].Key(), got.Items[i].Key())
		assert.Equal(t, want.Items[i].Quantity, got.Items[i].Quantity)
	}
	assert.True(t, want.Total.Equal(got.Total), "total %s vs %s", want.Total, got.Total)
	assert.Equal(t, 3, got.ItemCount)
	assert.True(t, reopened.Wishlist.Contains("1"))
}

func TestOpen_CorruptStorageStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cart.json"), []byte("{oops"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wishlist.json"), []byte("42"), 0o600))

	s := openAt(t, dir, nil)
	defer s.Close()

	assert.Equal(t, 0, s.Cart.ItemCount())
	assert.Equal(t, 0, s.Wishlist.ItemCount())

	raw, err := os.ReadFile(filepath.Join(dir, "cart.json"))
	require.NoError(t, err)
	assert.Equal(t, "{oops", string(raw), "hydration must not write")
}

func TestOpen_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Open(ctx, Options{Store: storage.NewMemory(nil)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMoveToWishlist(t *testing.T) {
	rec := &notify.Recorder{}
	s, err := Open(context.Background(), Options{Store: storage.NewMemory(nil), Notices: rec})
	require.NoError(t, err)
	defer s.Close()

	tee, _ := s.Catalog.Lookup("4")
	_, _ = s.Cart.Add(tee, 1, cart.WithSize("S"))
	_, _ = s.Cart.Add(tee, 1, cart.WithSize("L"))
	rec.Reset()

	added, err := s.MoveToWishlist("4")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, 0, s.Cart.ItemCount())
	assert.True(t, s.Wishlist.Contains("4"))
	assert.Equal(t, []string{"Organic Cotton T-Shirt added to wishlist!", "Item removed from cart"}, rec.Messages())

	_, err = s.MoveToWishlist("4")
	assert.ErrorIs(t, err, catalog.ErrUnknownProduct)
}

func TestSuggestions_SkipCartProducts(t *testing.T) {
	s, err := Open(context.Background(), Options{Store: storage.NewMemory(nil)})
	require.NoError(t, err)
	defer s.Close()

	p, _ := s.Catalog.Lookup("1")
	_, _ = s.Cart.Add(p, 1)

	got := s.Suggestions(4)
	require.Len(t, got, 4)
	for _, sp := range got {
		assert.NotEqual(t, "1", sp.ID)
	}
}

func TestCheckout_PlacesOrderImmediatelyWithoutDelay(t *testing.T) {
	mem := storage.NewMemory(nil)
	s, err := Open(context.Background(), Options{Store: mem})
	require.NoError(t, err)

	p, _ := s.Catalog.Lookup("2")
	_, _ = s.Cart.Add(p, 1)

	start := time.Now()
	order, err := s.Checkout.PlaceOrder(context.Background())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.NotEmpty(t, order.Number)
	s.Close()

	raw, ok, err := mem.Get(cart.StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestOpen_HydratesNumericPrices(t *testing.T) {
	dir := t.TempDir()
	doc := `[{"product":{"id":"4","name":"Organic Cotton T-Shirt","price":29.99,"inStock":true},"quantity":3,"selectedSize":"M"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cart.json"), []byte(doc), 0o600))

	s := openAt(t, dir, nil)
	defer s.Close()

	st := s.Cart.State()
	require.Len(t, st.Items, 1)
	assert.Equal(t, "89.97", st.Total.StringFixed(2))
	assert.Equal(t, 3, st.ItemCount)
	assert.Equal(t, "M", st.Items[0].SelectedSize)
}

func TestCart_FailedWriteKeepsMemoryAuthoritative(t *testing.T) {
	mem := storage.NewMemory(nil)
	mem.FailSet = errors.New("quota exceeded")
	s, err := Open(context.Background(), Options{Store: mem})
	require.NoError(t, err)
	defer s.Close()

	p, err := s.Catalog.Lookup("1")
	require.NoError(t, err)
	_, err = s.Cart.Add(p, 2, cart.WithColor(p.Colors[0]))
	require.NoError(t, err)
	s.Flush()

	assert.Equal(t, 0, mem.Writes())
	assert.Equal(t, 2, s.Cart.ItemCount())
	assert.True(t, s.Cart.Total().Equal(p.Price.Mul(decimal.NewFromInt(2))))

	mem.FailSet = nil
	_, err = s.Cart.Add(p, 1, cart.WithColor(p.Colors[0]))
	require.NoError(t, err)
	s.Flush()

	raw, ok, err := mem.Get(cart.StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"quantity":3`)
	assert.Equal(t, 3, s.Cart.ItemCount())
}
