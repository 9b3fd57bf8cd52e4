package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/storefront/internal/wishlist"
)

func (m Model) wishlistItems() []wishlist.Item {
	if m.shop == nil {
		return nil
	}
	return m.shop.Wishlist.Items()
}

// handleWishlistKey processes keyboard input for the wishlist view.
func (m Model) handleWishlistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.wishlistItems()
	if len(items) == 0 {
		return m, nil
	}
	if m.moveCursor(msg, &m.wishlistRow, len(items)) {
		return m, nil
	}
	m.wishlistRow = clampRow(m.wishlistRow, items)
	it := items[m.wishlistRow]

	switch {
	case key.Matches(msg, m.keys.AddToCart):
		// Saved items go to the bag with the first offered variant.
		return m, m.addToCart(it.Product, choice{qty: 1})
	case key.Matches(msg, m.keys.RemoveLine):
		m.shop.Wishlist.Remove(it.Product.ID)
	case key.Matches(msg, m.keys.Clear):
		m.shop.Wishlist.Clear()
	}

	m.wishlistRow = clampRow(m.wishlistRow, m.shop.Wishlist.Items())
	return m, nil
}

// renderWishlist renders saved items, newest last.
func (m Model) renderWishlist() string {
	styles := m.theme.Styles()
	items := m.wishlistItems()
	if len(items) == 0 {
		return styles.Text.Bold(true).Render("Your wishlist is empty") + "\n" +
			styles.MutedText.Render("Press w on a product to save it for later.")
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(fmt.Sprintf("My Wishlist (%d items)", len(items))))
	b.WriteString("\n\n")

	for i, it := range items {
		row := fmt.Sprintf("%s  %s  %s",
			padRight(truncate(it.Product.Name, 30), 30),
			m.priceTag(it.Product),
			styles.FaintText.Render("saved "+it.AddedAt.Local().Format("Jan 2")),
		)
		if m.shop.Cart.Has(it.Product.ID) {
			row += "  " + styles.AccentText.Render("in bag")
		}
		if i == m.wishlistRow {
			row = styles.Selected.Render("▸ ") + row
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
