package wishlist

import (
	"time"

	"github.com/five82/storefront/internal/catalog"
)

// Item is a saved product. Identity is the product id alone.
type Item struct {
	Product catalog.Product `json:"product"`
	AddedAt time.Time       `json:"addedAt"`
}

// State is the wishlist contents. ItemCount is always len(Items).
type State struct {
	Items     []Item
	ItemCount int
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{ItemCount: s.ItemCount}
	if s.Items != nil {
		out.Items = make([]Item, len(s.Items))
		for i, it := range s.Items {
			it.Product = it.Product.Clone()
			out.Items[i] = it
		}
	}
	return out
}

// Contains reports whether productID is saved.
func (s State) Contains(productID string) bool {
	return indexOf(s.Items, productID) >= 0
}

func indexOf(items []Item, productID string) int {
	for i, it := range items {
		if it.Product.ID == productID {
			return i
		}
	}
	return -1
}
