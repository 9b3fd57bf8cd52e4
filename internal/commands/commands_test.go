package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/storefront/internal/app"
	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/checkout"
)

type harness struct {
	t       *testing.T
	dataDir string
	out     bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("STOREFRONT_DATA_DIR", "")
	t.Setenv("STOREFRONT_CATALOG", "")
	t.Setenv("STOREFRONT_LOG_LEVEL", "")
	t.Setenv("STOREFRONT_CHECKOUT_DELAY", "0s")
	return &harness{t: t, dataDir: t.TempDir()}
}

// run executes one invocation and returns its stdout.
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	h.out.Reset()
	cliApp := New(Options{Out: &h.out, Err: &h.out})
	argv := append([]string{"storefront", "--data-dir", h.dataDir}, args...)
	err := cliApp.RunContext(context.Background(), argv)
	return h.out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, "args %v output:\n%s", args, out)
	return out
}

func TestProducts_ListsCatalogue(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("products")
	assert.Contains(t, out, "Premium Wireless Headphones")
	assert.Contains(t, out, "$1,299.99")
	assert.Contains(t, out, "XS,S,M,L,XL")
}

func TestCart_StatePersistsAcrossInvocations(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("cart", "add", "--qty", "2", "--size", "M", "--color", "Navy", "4")
	assert.Contains(t, out, "Organic Cotton T-Shirt added to cart!")
	h.mustRun("cart", "add", "--color", "Black", "1")

	out = h.mustRun("cart", "list")
	assert.Contains(t, out, "M / Navy")
	assert.Contains(t, out, "Items:     3")
	// 2 x 29.99 + 299.99
	assert.Contains(t, out, "Subtotal:  $359.97")
	assert.Contains(t, out, "Shipping:  Free")

	_, err := os.Stat(filepath.Join(h.dataDir, "cart.json"))
	require.NoError(t, err)
}

func TestCart_ListWithPromo(t *testing.T) {
	h := newHarness(t)
	h.mustRun("cart", "add", "--size", "S", "--color", "White", "4")

	out := h.mustRun("cart", "list", "--promo", "DOPAMINE10")
	// 29.99 + 9.99 shipping - 3.00 discount
	assert.Contains(t, out, "Shipping:  $9.99")
	assert.Contains(t, out, "Discount:  -$3.00")
	assert.Contains(t, out, "Total:     $36.98")

	out = h.mustRun("cart", "list", "--promo", "nope")
	assert.Contains(t, out, "! Invalid promo code")
	assert.NotContains(t, out, "Discount")
}

func TestCart_AddValidatesVariant(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("cart", "add", "--size", "XXL", "4")
	assert.ErrorContains(t, err, `no size "XXL"`)

	_, err = h.run("cart", "add", "--color", "Pink", "1")
	assert.ErrorContains(t, err, `no color "Pink"`)

	_, err = h.run("cart", "add", "99")
	assert.ErrorIs(t, err, catalog.ErrUnknownProduct)

	_, err = h.run("cart", "add", "--qty", "0", "1")
	assert.Error(t, err)

	_, err = h.run("cart", "add")
	assert.ErrorIs(t, err, errUsage)

	assert.Contains(t, h.mustRun("cart", "list"), "Your cart is empty")
}

func TestCart_RemoveLineVersusProduct(t *testing.T) {
	h := newHarness(t)
	h.mustRun("cart", "add", "--size", "S", "--color", "Black", "4")
	h.mustRun("cart", "add", "--size", "M", "--color", "Black", "4")

	out := h.mustRun("cart", "remove", "--size", "S", "--color", "Black", "4")
	assert.Contains(t, out, "Item removed from cart")
	out = h.mustRun("cart", "list")
	assert.Contains(t, out, "M / Black")
	assert.NotContains(t, out, "S / Black")

	_, err := h.run("cart", "remove", "--size", "XL", "4")
	assert.ErrorContains(t, err, "no 4 (XL) line")

	h.mustRun("cart", "add", "--size", "L", "--color", "Gray", "4")
	h.mustRun("cart", "remove", "4")
	assert.Contains(t, h.mustRun("cart", "list"), "Your cart is empty")

	_, err = h.run("cart", "remove", "4")
	assert.ErrorContains(t, err, "not in the cart")
}

func TestCart_Update(t *testing.T) {
	h := newHarness(t)
	h.mustRun("cart", "add", "--color", "Black", "1")

	out := h.mustRun("cart", "update", "1", "3")
	assert.Contains(t, out, "Items:     3")

	out = h.mustRun("cart", "update", "--color", "Black", "1", "0")
	assert.Contains(t, out, "Your cart is empty")

	h.mustRun("cart", "add", "--color", "Black", "1")
	_, err := h.run("cart", "update", "1", "lots")
	assert.ErrorIs(t, err, errUsage)
}

func TestCart_ClearAndMove(t *testing.T) {
	h := newHarness(t)
	h.mustRun("cart", "add", "--color", "Black", "1")
	h.mustRun("cart", "add", "--color", "Black", "2")

	out := h.mustRun("cart", "move", "2")
	assert.Contains(t, out, "Smart Fitness Watch added to wishlist!")
	assert.Contains(t, h.mustRun("wishlist", "list"), "Smart Fitness Watch")

	out = h.mustRun("cart", "clear")
	assert.Contains(t, out, "Cart cleared")
	assert.Contains(t, h.mustRun("cart", "list"), "Your cart is empty")
}

func TestWishlist_Commands(t *testing.T) {
	h := newHarness(t)

	assert.Contains(t, h.mustRun("wishlist", "list"), "Your wishlist is empty")

	out := h.mustRun("wishlist", "add", "3")
	assert.Contains(t, out, "Minimalist Backpack added to wishlist!")

	out = h.mustRun("wishlist", "add", "3")
	assert.Contains(t, out, "! Item already in wishlist!")

	assert.Contains(t, h.mustRun("products"), "♥")

	out = h.mustRun("wishlist", "remove", "3")
	assert.Contains(t, out, "Removed from wishlist")

	_, err := h.run("wishlist", "remove", "3")
	assert.ErrorContains(t, err, "not in the wishlist")

	h.mustRun("wishlist", "add", "5")
	assert.Contains(t, h.mustRun("wishlist", "clear"), "Wishlist cleared")
}

func TestCheckout_PlacesOrderAndClearsCart(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("checkout")
	assert.ErrorIs(t, err, checkout.ErrEmptyCart)

	h.mustRun("cart", "add", "--qty", "2", "--size", "M", "--color", "White", "4")
	out := h.mustRun("checkout")
	// 59.98 + free shipping + 4.7984 tax
	assert.Contains(t, out, "Shipping:  Free")
	assert.Contains(t, out, "Tax:       $4.80")
	assert.Contains(t, out, "Total Amount:       $64.78")
	assert.Regexp(t, regexp.MustCompile(`Order Number:\s+#DP[0-9A-F]{8}`), out)
	assert.Contains(t, out, "Estimated Delivery: 3-5 business days")

	assert.Contains(t, h.mustRun("cart", "list"), "Your cart is empty")
}

func TestDefaultActionRunsTUI(t *testing.T) {
	var got app.Options
	called := false
	cliApp := New(Options{
		Out: &bytes.Buffer{},
		RunTUI: func(_ context.Context, opts app.Options) error {
			called = true
			got = opts
			return nil
		},
	})

	err := cliApp.RunContext(context.Background(), []string{"storefront", "--config", "/tmp/c.toml", "--data-dir", "/tmp/d", "--debug"})
	require.NoError(t, err)
	require.True(t, called)
	assert.Equal(t, app.Options{ConfigPath: "/tmp/c.toml", DataDir: "/tmp/d", Debug: true}, got)
}

func TestLogs_ShowsCommandActivity(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("logs")
	assert.Contains(t, out, "No log entries")

	t.Setenv("STOREFRONT_LOG_LEVEL", "debug")
	h.mustRun("cart", "add", "--qty", "2", "--size", "M", "--color", "White", "4")
	h.mustRun("checkout")

	out = h.mustRun("logs")
	assert.Contains(t, out, "cart transition")
	assert.Contains(t, out, "Organic Cotton T-Shirt added to cart!")

	out = h.mustRun("logs", "--level", "info")
	assert.Contains(t, out, "order placed")
	assert.NotContains(t, out, "cart transition")

	_, err := h.run("logs", "--level", "loud")
	assert.ErrorIs(t, err, errUsage)
}
