package cart

import (
	"time"

	"github.com/five82/storefront/internal/notify"
	"github.com/five82/storefront/internal/persist"
)

// StorageKey is the storage key holding the cart.
const StorageKey = "cart"

const (
	addedNoticeDuration   = 3 * time.Second
	removedNoticeDuration = 2 * time.Second
)

// Persist writes the cart items to slot after every transition. Load
// transitions are skipped since they come from storage.
func Persist(slot *persist.Slot[LineItem]) Effect {
	return func(c Change) {
		if _, ok := c.Action.(Load); ok {
			return
		}
		slot.Save(c.After.Items)
	}
}

// Notices reports user-visible feedback for cart transitions. Quantity
// updates are silent.
func Notices(sink notify.Sink) Effect {
	return func(c Change) {
		switch a := c.Action.(type) {
		case Add:
			sink.Notify(notify.NewSuccess(addedNoticeDuration, a.Product.Name+" added to cart!"))
		case Remove, RemoveLine:
			sink.Notify(notify.NewSuccess(removedNoticeDuration, "Item removed from cart"))
		case Clear:
			sink.Notify(notify.NewSuccess(removedNoticeDuration, "Cart cleared"))
		}
	}
}
