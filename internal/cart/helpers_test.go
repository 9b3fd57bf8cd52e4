package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/five82/storefront/internal/catalog"
)

func product(id, price string) catalog.Product {
	return catalog.Product{
		ID:      id,
		Name:    "Product " + id,
		Price:   decimal.RequireFromString(price),
		InStock: true,
		Sizes:   []string{"S", "M", "L"},
		Colors:  []string{"Black", "White"},
	}
}

func requireTotal(t *testing.T, s State, want string, count int) {
	t.Helper()
	if !s.Total.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("Total = %s, want %s", s.Total, want)
	}
	if s.ItemCount != count {
		t.Fatalf("ItemCount = %d, want %d", s.ItemCount, count)
	}
}

// checkInvariants verifies the aggregates and key uniqueness of s.
func checkInvariants(t *testing.T, s State) {
	t.Helper()
	total, count := decimal.Zero, 0
	for _, it := range s.Items {
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		count += it.Quantity
	}
	if !s.Total.Equal(total) || s.ItemCount != count {
		t.Fatalf("aggregates (%s, %d) drifted from items (%s, %d)", s.Total, s.ItemCount, total, count)
	}
	seen := make(map[Key]bool, len(s.Items))
	for _, it := range s.Items {
		if it.Quantity < 1 {
			t.Fatalf("line %+v has quantity %d", it.Key(), it.Quantity)
		}
		if seen[it.Key()] {
			t.Fatalf("duplicate key %+v", it.Key())
		}
		seen[it.Key()] = true
	}
}
