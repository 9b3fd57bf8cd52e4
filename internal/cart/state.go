package cart

import (
	"github.com/shopspring/decimal"

	"github.com/five82/storefront/internal/catalog"
)

// Key identifies a line item. Empty Size or Color means "not selected".
type Key struct {
	ProductID string
	Size      string
	Color     string
}

// LineItem is one configured product in the cart. The JSON shape is the
// persisted storage shape.
type LineItem struct {
	Product       catalog.Product `json:"product"`
	Quantity      int             `json:"quantity" validate:"gte=1"`
	SelectedSize  string          `json:"selectedSize,omitempty"`
	SelectedColor string          `json:"selectedColor,omitempty"`
}

// Key returns the item's identity.
func (l LineItem) Key() Key {
	return Key{ProductID: l.Product.ID, Size: l.SelectedSize, Color: l.SelectedColor}
}

// Subtotal is price times quantity.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Variant describes the selected size and color for display, e.g. "M / Black".
func (l LineItem) Variant() string {
	switch {
	case l.SelectedSize != "" && l.SelectedColor != "":
		return l.SelectedSize + " / " + l.SelectedColor
	case l.SelectedSize != "":
		return l.SelectedSize
	default:
		return l.SelectedColor
	}
}

func (l LineItem) clone() LineItem {
	l.Product = l.Product.Clone()
	return l
}

// State is the cart contents plus aggregates derived from them. Total and
// ItemCount are only ever set by Reduce.
type State struct {
	Items     []LineItem
	Total     decimal.Decimal
	ItemCount int
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{Total: s.Total, ItemCount: s.ItemCount}
	if s.Items != nil {
		out.Items = make([]LineItem, len(s.Items))
		for i, it := range s.Items {
			out.Items[i] = it.clone()
		}
	}
	return out
}

// Line returns the item with key k.
func (s State) Line(k Key) (LineItem, bool) {
	if i := indexOf(s.Items, k); i >= 0 {
		return s.Items[i], true
	}
	return LineItem{}, false
}

// Has reports whether any line holds productID.
func (s State) Has(productID string) bool {
	for _, it := range s.Items {
		if it.Product.ID == productID {
			return true
		}
	}
	return false
}

// Totals returns the sum of price times quantity and the sum of quantities.
func Totals(items []LineItem) (decimal.Decimal, int) {
	total := decimal.Zero
	count := 0
	for _, it := range items {
		total = total.Add(it.Subtotal())
		count += it.Quantity
	}
	return total, count
}

func indexOf(items []LineItem, k Key) int {
	for i, it := range items {
		if it.Key() == k {
			return i
		}
	}
	return -1
}
