// Package shop assembles the catalogue, cart, wishlist and checkout over one
// storage.Store. It is the owner of the engines; the TUI and CLI receive a
// *Shop and never construct engines themselves.
package shop

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/five82/storefront/internal/cart"
	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/checkout"
	"github.com/five82/storefront/internal/notify"
	"github.com/five82/storefront/internal/persist"
	"github.com/five82/storefront/internal/storage"
	"github.com/five82/storefront/internal/wishlist"
)

// Options configure Open.
type Options struct {
	// Store backs the cart and wishlist. When nil a FileStore is opened at
	// DataDir.
	Store   storage.Store
	DataDir string

	Catalog *catalog.Catalog // nil uses catalog.Default
	Pricing *checkout.Pricing
	// CheckoutDelay is the simulated processing time. Zero or negative
	// places orders immediately.
	CheckoutDelay time.Duration

	Notices notify.Sink // nil discards notices
	Logger  *zap.Logger
	Now     func() time.Time
}

// Shop is the running storefront state.
type Shop struct {
	Catalog  *catalog.Catalog
	Cart     *cart.Service
	Wishlist *wishlist.Service
	Checkout *checkout.Service
	Store    storage.Store

	writer *persist.Writer
	logger *zap.Logger
}

// Open hydrates the cart and wishlist from storage and wires their
// persistence and notification effects. Hydration completes before the
// facades exist, so no write can precede the initial read.
func Open(ctx context.Context, opts Options) (*Shop, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sink := opts.Notices
	if sink == nil {
		sink = notify.Discard
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	store := opts.Store
	if store == nil {
		fs, err := storage.Open(opts.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		store = fs
	}

	products := opts.Catalog
	if products == nil {
		var err error
		products, err = catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	}

	writer := persist.NewWriter(store, logger.Named("persist"))
	slotCfg := persist.Config{
		Store:     store,
		Writer:    writer,
		Logger:    logger.Named("persist"),
		Validator: catalog.Validator(),
	}
	cartSlot := persist.NewSlot[cart.LineItem](cart.StorageKey, slotCfg)
	wishSlot := persist.NewSlot[wishlist.Item](wishlist.StorageKey, slotCfg)

	cartItems := cartSlot.Load()
	wishItems := wishSlot.Load()

	s := &Shop{
		Catalog: products,
		Store:   store,
		writer:  writer,
		logger:  logger,
	}
	s.Cart = cart.New(cartItems,
		cart.OnCommit(cart.Persist(cartSlot)),
		cart.After(cart.Notices(sink)),
		cart.WithLogger(logger.Named("cart")),
	)
	s.Wishlist = wishlist.New(wishItems,
		wishlist.OnCommit(wishlist.Persist(wishSlot)),
		wishlist.After(wishlist.Notices(sink)),
		wishlist.WithClock(now),
		wishlist.WithLogger(logger.Named("wishlist")),
	)

	delay := opts.CheckoutDelay
	if delay <= 0 {
		delay = -1
	}
	s.Checkout = checkout.New(s.Cart, checkout.Options{
		Pricing: opts.Pricing,
		Delay:   delay,
		Logger:  logger.Named("checkout"),
		Now:     now,
	})

	logger.Debug("shop opened",
		zap.Int("products", products.Len()),
		zap.Int("cart_items", s.Cart.ItemCount()),
		zap.Int("wishlist_items", s.Wishlist.ItemCount()),
	)
	return s, nil
}

// MoveToWishlist saves the product of the first cart line for productID and
// then removes every cart line for it. It reports whether the wishlist
// accepted the product; a duplicate still removes it from the cart.
func (s *Shop) MoveToWishlist(productID string) (bool, error) {
	var product catalog.Product
	found := false
	for _, it := range s.Cart.Items() {
		if it.Product.ID == productID {
			product, found = it.Product, true
			break
		}
	}
	if !found {
		return false, fmt.Errorf("%w: %q is not in the cart", catalog.ErrUnknownProduct, productID)
	}
	_, added := s.Wishlist.Add(product)
	s.Cart.Remove(productID)
	return added, nil
}

// Suggestions returns up to n catalogue products not already in the cart.
func (s *Shop) Suggestions(n int) []catalog.Product {
	return s.Catalog.Suggestions(s.Cart.Has, n)
}

// Flush waits for pending storage writes.
func (s *Shop) Flush() {
	s.writer.Flush()
}

// Close drains pending writes. The shop must not be mutated afterwards.
func (s *Shop) Close() {
	s.writer.Close()
}
