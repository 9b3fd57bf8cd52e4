package wishlist

import (
	"time"

	"github.com/five82/storefront/internal/notify"
	"github.com/five82/storefront/internal/persist"
)

// StorageKey is the storage key holding the wishlist.
const StorageKey = "wishlist"

const (
	longNoticeDuration  = 3 * time.Second
	shortNoticeDuration = 2 * time.Second
)

// Persist writes the wishlist items to slot after every change of contents.
func Persist(slot *persist.Slot[Item]) Effect {
	return func(c Change) {
		if _, ok := c.Action.(Load); ok || c.Rejected() {
			return
		}
		slot.Save(c.After.Items)
	}
}

// Notices reports user-visible feedback. Every Add produces exactly one
// notice: an error for a duplicate, a success otherwise.
func Notices(sink notify.Sink) Effect {
	return func(c Change) {
		switch a := c.Action.(type) {
		case Add:
			if c.Rejected() {
				sink.Notify(notify.NewError(shortNoticeDuration, "Item already in wishlist!"))
				return
			}
			sink.Notify(notify.NewSuccess(longNoticeDuration, a.Product.Name+" added to wishlist!"))
		case Remove:
			sink.Notify(notify.NewSuccess(shortNoticeDuration, "Removed from wishlist"))
		case Clear:
			sink.Notify(notify.NewSuccess(shortNoticeDuration, "Wishlist cleared"))
		}
	}
}
