// Package wishlist implements the saved-for-later list. Unlike the cart, a
// duplicate add is rejected rather than merged.
package wishlist

import (
	"strings"
	"time"

	"github.com/five82/storefront/internal/catalog"
)

// Action is a wishlist transition request.
type Action interface {
	wishlistAction()
}

// Add saves Product unless it is already present. AddedAt is supplied by the
// caller so the reducer stays deterministic.
type Add struct {
	Product catalog.Product
	AddedAt time.Time
}

// Remove drops ProductID.
type Remove struct {
	ProductID string
}

// Clear empties the wishlist.
type Clear struct{}

// Load replaces the wishlist with hydrated items, dropping entries without a
// product id and all but the first entry per product.
type Load struct {
	Items []Item
}

func (Add) wishlistAction()    {}
func (Remove) wishlistAction() {}
func (Clear) wishlistAction()  {}
func (Load) wishlistAction()   {}

// Reduce returns the state that results from applying a to s. It never
// modifies s.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Add:
		if s.Contains(a.Product.ID) {
			return s
		}
		items := make([]Item, len(s.Items), len(s.Items)+1)
		copy(items, s.Items)
		items = append(items, Item{Product: a.Product.Clone(), AddedAt: a.AddedAt})
		return withItems(items)

	case Remove:
		items := make([]Item, 0, len(s.Items))
		for _, it := range s.Items {
			if it.Product.ID != a.ProductID {
				items = append(items, it)
			}
		}
		return withItems(items)

	case Clear:
		return withItems(nil)

	case Load:
		items := make([]Item, 0, len(a.Items))
		for _, it := range a.Items {
			if strings.TrimSpace(it.Product.ID) == "" || indexOf(items, it.Product.ID) >= 0 {
				continue
			}
			it.Product = it.Product.Clone()
			items = append(items, it)
		}
		return withItems(items)

	default:
		return s
	}
}

func withItems(items []Item) State {
	return State{Items: items, ItemCount: len(items)}
}
