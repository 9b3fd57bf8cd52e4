package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/storefront/internal/cart"
	"github.com/five82/storefront/internal/catalog"
)

// maxQuantity mirrors the product page's quantity stepper.
const maxQuantity = 10

// choice is the variant and quantity picked for one product.
type choice struct {
	size  int
	color int
	qty   int
}

func (m Model) choiceFor(productID string) choice {
	c, ok := m.choices[productID]
	if !ok {
		c = choice{qty: 1}
	}
	return c
}

func (c choice) sizeOf(p catalog.Product) string {
	if len(p.Sizes) == 0 {
		return ""
	}
	return p.Sizes[c.size%len(p.Sizes)]
}

func (c choice) colorOf(p catalog.Product) string {
	if len(p.Colors) == 0 {
		return ""
	}
	return p.Colors[c.color%len(p.Colors)]
}

func (m Model) products() []catalog.Product {
	if m.shop == nil {
		return nil
	}
	return m.shop.Catalog.All()
}

func (m Model) selectedProduct() (catalog.Product, bool) {
	items := m.products()
	if m.productRow < 0 || m.productRow >= len(items) {
		return catalog.Product{}, false
	}
	return items[m.productRow], true
}

// handleProductsKey processes keyboard input for the catalogue view.
func (m Model) handleProductsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.products()
	if len(items) == 0 {
		return m, nil
	}
	if m.moveCursor(msg, &m.productRow, len(items)) {
		return m, nil
	}

	p, ok := m.selectedProduct()
	if !ok {
		return m, nil
	}
	c := m.choiceFor(p.ID)

	switch {
	case key.Matches(msg, m.keys.AddToCart):
		return m, m.addToCart(p, c)
	case key.Matches(msg, m.keys.CycleSize):
		if len(p.Sizes) > 0 {
			c.size = (c.size + 1) % len(p.Sizes)
		}
	case key.Matches(msg, m.keys.CycleColor):
		if len(p.Colors) > 0 {
			c.color = (c.color + 1) % len(p.Colors)
		}
	case key.Matches(msg, m.keys.Increase):
		c.qty = min(c.qty+1, maxQuantity)
	case key.Matches(msg, m.keys.Decrease):
		c.qty = max(c.qty-1, 1)
	case key.Matches(msg, m.keys.ToggleWishlist):
		m.shop.Wishlist.Toggle(p)
		return m, nil
	default:
		return m, nil
	}
	m.choices[p.ID] = c
	return m, nil
}

// addToCart adds the chosen variant. The cart's own notice confirms it.
func (m Model) addToCart(p catalog.Product, c choice) tea.Cmd {
	if !p.InStock {
		return nil
	}
	_, err := m.shop.Cart.Add(p, c.qty,
		cart.WithSize(c.sizeOf(p)),
		cart.WithColor(c.colorOf(p)),
	)
	if err != nil {
		m.logger.Warn("add to cart failed", zap.String("product", p.ID), zap.Error(err))
	}
	return nil
}

// renderProducts renders the catalogue list and the selected product.
func (m Model) renderProducts() string {
	styles := m.theme.Styles()
	items := m.products()
	if len(items) == 0 {
		return styles.MutedText.Render("No products available.")
	}

	nameWidth := 30
	var list strings.Builder
	for i, p := range items {
		marker := "  "
		if m.shop.Wishlist.Contains(p.ID) {
			marker = styles.SaleText.Render("♥ ")
		}
		row := marker + padRight(truncate(p.Name, nameWidth), nameWidth) + "  " + m.priceTag(p)
		if b := m.badges(p); b != "" {
			row += "  " + b
		}
		if i == m.productRow {
			row = styles.Selected.Render("▸ ") + row
		} else {
			row = "  " + row
		}
		list.WriteString(row)
		list.WriteString("\n")
	}

	p, _ := m.selectedProduct()
	return strings.TrimRight(list.String(), "\n") + "\n\n" + m.renderProductDetail(p)
}

func (m Model) renderProductDetail(p catalog.Product) string {
	styles := m.theme.Styles()
	c := m.choiceFor(p.ID)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(p.Name))
	if p.Brand != "" {
		b.WriteString(styles.MutedText.Render("  by " + p.Brand))
	}
	b.WriteString("\n")
	if p.Rating > 0 {
		b.WriteString(styles.WarningText.Render(stars(p.Rating)))
		b.WriteString(styles.MutedText.Render(fmt.Sprintf(" %.1f (%d reviews)", p.Rating, p.ReviewCount)))
		b.WriteString("\n")
	}
	if p.Description != "" {
		b.WriteString(styles.Text.Render(p.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if len(p.Sizes) > 0 {
		b.WriteString(styles.MutedText.Render("Size   "))
		b.WriteString(m.options(p.Sizes, c.sizeOf(p)))
		b.WriteString("\n")
	}
	if len(p.Colors) > 0 {
		b.WriteString(styles.MutedText.Render("Color  "))
		b.WriteString(m.options(p.Colors, c.colorOf(p)))
		b.WriteString("\n")
	}
	b.WriteString(styles.MutedText.Render("Qty    "))
	b.WriteString(styles.Text.Render(fmt.Sprintf("- %d +", c.qty)))
	if line, ok := m.shop.Cart.State().Line(cart.Key{ProductID: p.ID, Size: c.sizeOf(p), Color: c.colorOf(p)}); ok {
		b.WriteString(styles.AccentText.Render(fmt.Sprintf("   %d in bag", line.Quantity)))
	}

	width := 72
	if m.width > 0 && m.width-4 < width {
		width = max(m.width-4, 20)
	}
	return styles.Panel.Width(width).Render(b.String())
}
