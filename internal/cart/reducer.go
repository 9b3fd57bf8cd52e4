package cart

import (
	"strings"

	"github.com/five82/storefront/internal/catalog"
)

// Action is a cart transition request.
type Action interface {
	cartAction()
}

// Add merges Quantity into the line with the same key, or appends a new
// line. Quantities below one are ignored.
type Add struct {
	Product  catalog.Product
	Quantity int
	Size     string
	Color    string
}

// Remove drops every line for ProductID regardless of size or color.
type Remove struct {
	ProductID string
}

// UpdateQuantity sets the quantity of every line for ProductID, then drops
// lines whose quantity is not positive.
type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

// RemoveLine drops the single line with Key.
type RemoveLine struct {
	Key Key
}

// UpdateLineQuantity sets the quantity of the line with Key, dropping it
// when the quantity is not positive.
type UpdateLineQuantity struct {
	Key      Key
	Quantity int
}

// Clear empties the cart.
type Clear struct{}

// Load replaces the cart with hydrated items. Lines without a product id or
// with a quantity below one are dropped; lines sharing a key are merged into
// the first.
type Load struct {
	Items []LineItem
}

func (Add) cartAction()                {}
func (Remove) cartAction()             {}
func (UpdateQuantity) cartAction()     {}
func (RemoveLine) cartAction()         {}
func (UpdateLineQuantity) cartAction() {}
func (Clear) cartAction()              {}
func (Load) cartAction()               {}

// Reduce returns the state that results from applying a to s. It never
// modifies s.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Add:
		if a.Quantity < 1 {
			return s
		}
		item := LineItem{
			Product:       a.Product.Clone(),
			Quantity:      a.Quantity,
			SelectedSize:  a.Size,
			SelectedColor: a.Color,
		}
		items := copyItems(s.Items, 1)
		if i := indexOf(items, item.Key()); i >= 0 {
			items[i].Quantity += a.Quantity
		} else {
			items = append(items, item)
		}
		return withItems(items)

	case Remove:
		return withItems(filter(s.Items, func(it LineItem) bool {
			return it.Product.ID != a.ProductID
		}))

	case UpdateQuantity:
		items := copyItems(s.Items, 0)
		for i := range items {
			if items[i].Product.ID == a.ProductID {
				items[i].Quantity = a.Quantity
			}
		}
		return withItems(filter(items, positive))

	case RemoveLine:
		return withItems(filter(s.Items, func(it LineItem) bool {
			return it.Key() != a.Key
		}))

	case UpdateLineQuantity:
		items := copyItems(s.Items, 0)
		if i := indexOf(items, a.Key); i >= 0 {
			items[i].Quantity = a.Quantity
		}
		return withItems(filter(items, positive))

	case Clear:
		return withItems(nil)

	case Load:
		return withItems(normalize(a.Items))

	default:
		return s
	}
}

func withItems(items []LineItem) State {
	total, count := Totals(items)
	return State{Items: items, Total: total, ItemCount: count}
}

func copyItems(items []LineItem, extra int) []LineItem {
	out := make([]LineItem, len(items), len(items)+extra)
	copy(out, items)
	return out
}

func filter(items []LineItem, keep func(LineItem) bool) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func positive(it LineItem) bool {
	return it.Quantity > 0
}

func normalize(in []LineItem) []LineItem {
	out := make([]LineItem, 0, len(in))
	for _, it := range in {
		if it.Quantity < 1 || strings.TrimSpace(it.Product.ID) == "" {
			continue
		}
		if i := indexOf(out, it.Key()); i >= 0 {
			out[i].Quantity += it.Quantity
			continue
		}
		out = append(out, it.clone())
	}
	return out
}
