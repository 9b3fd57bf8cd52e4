package commands

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/storefront/internal/cart"
	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/checkout"
	"github.com/five82/storefront/internal/shop"
	"github.com/five82/storefront/internal/wishlist"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func productTable(products []catalog.Product, s *shop.Shop) string {
	t := newTable("ID", "Name", "Price", "Sizes", "Colors", "")
	for _, p := range products {
		var flags []string
		if p.OnSale {
			flags = append(flags, "sale")
		}
		if p.IsNew {
			flags = append(flags, "new")
		}
		if !p.InStock {
			flags = append(flags, "sold out")
		}
		if s.Wishlist.Contains(p.ID) {
			flags = append(flags, "♥")
		}
		if s.Cart.Has(p.ID) {
			flags = append(flags, "in cart")
		}
		t.Row(
			p.ID,
			p.Name,
			checkout.FormatPrice(p.Price),
			strings.Join(p.Sizes, ","),
			strings.Join(p.Colors, ","),
			strings.Join(flags, " "),
		)
	}
	return t.String()
}

func cartTable(items []cart.LineItem) string {
	t := newTable("ID", "Product", "Variant", "Qty", "Price", "Subtotal")
	for _, it := range items {
		t.Row(
			it.Product.ID,
			it.Product.Name,
			it.Variant(),
			strconv.Itoa(it.Quantity),
			checkout.FormatPrice(it.Product.Price),
			checkout.FormatPrice(it.Subtotal()),
		)
	}
	return t.String()
}

func wishlistTable(items []wishlist.Item) string {
	t := newTable("ID", "Product", "Price", "Saved")
	for _, it := range items {
		t.Row(
			it.Product.ID,
			it.Product.Name,
			checkout.FormatPrice(it.Product.Price),
			it.AddedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return t.String()
}
