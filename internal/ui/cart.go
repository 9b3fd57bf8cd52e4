package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/storefront/internal/cart"
	"github.com/five82/storefront/internal/checkout"
	"github.com/five82/storefront/internal/notify"
)

const suggestionCount = 3

func (m Model) cartItems() []cart.LineItem {
	if m.shop == nil {
		return nil
	}
	return m.shop.Cart.Items()
}

// handleCartKey processes keyboard input for the cart view.
func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.cartItems()

	switch {
	case key.Matches(msg, m.keys.Promo):
		m.editingPromo = true
		m.promoInput.SetValue(m.promo)
		return m, m.promoInput.Focus()
	case key.Matches(msg, m.keys.GoToCheckout):
		if len(items) > 0 {
			m.switchView(ViewCheckout)
		}
		return m, nil
	}

	if len(items) == 0 {
		return m, nil
	}
	if m.moveCursor(msg, &m.cartRow, len(items)) {
		return m, nil
	}
	if m.cartRow >= len(items) {
		m.cartRow = len(items) - 1
	}
	line := items[m.cartRow]

	switch {
	case key.Matches(msg, m.keys.Increase):
		m.shop.Cart.UpdateLineQuantity(line.Key(), line.Quantity+1)
	case key.Matches(msg, m.keys.Decrease):
		m.shop.Cart.UpdateLineQuantity(line.Key(), line.Quantity-1)
	case key.Matches(msg, m.keys.RemoveLine):
		m.shop.Cart.RemoveLine(line.Key())
	case key.Matches(msg, m.keys.MoveToWishlist):
		if _, err := m.shop.MoveToWishlist(line.Product.ID); err != nil {
			m.logger.Warn("move to wishlist failed", zap.String("product", line.Product.ID), zap.Error(err))
		}
	case key.Matches(msg, m.keys.Clear):
		m.shop.Cart.Clear()
	}

	m.cartRow = clampRow(m.cartRow, m.shop.Cart.State().Items)
	return m, nil
}

// handlePromoKey feeds the promo field until it is applied or cancelled.
func (m Model) handlePromoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editingPromo = false
		m.promoInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.editingPromo = false
		m.promoInput.Blur()
		code := strings.TrimSpace(m.promoInput.Value())
		if code == "" {
			m.promo = ""
			return m, nil
		}
		if !m.pricing().ValidPromo(code) {
			return m, m.pushToast(notify.NewError(0, "Invalid promo code"))
		}
		m.promo = code
		return m, m.pushToast(notify.NewSuccess(0, "Promo code applied!"))
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.promoInput, cmd = m.promoInput.Update(msg)
	return m, cmd
}

func (m Model) pricing() checkout.Pricing {
	if m.shop == nil {
		return checkout.DefaultPricing()
	}
	return m.shop.Checkout.Pricing()
}

func clampRow[T any](row int, items []T) int {
	if row >= len(items) {
		row = len(items) - 1
	}
	return max(row, 0)
}

// renderCart renders the bag, its summary and suggestions.
func (m Model) renderCart() string {
	styles := m.theme.Styles()
	items := m.cartItems()
	if len(items) == 0 {
		return styles.Text.Bold(true).Render("Your cart is empty") + "\n" +
			styles.MutedText.Render("Looks like you haven't added anything yet. Press 1 to browse products.") +
			m.renderSuggestions()
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(fmt.Sprintf("Shopping Cart (%d items)", m.shop.Cart.ItemCount())))
	b.WriteString("\n\n")

	nameWidth := 30
	for i, it := range items {
		name := padRight(truncate(it.Product.Name, nameWidth), nameWidth)
		variant := padRight(truncate(it.Variant(), 16), 16)
		row := fmt.Sprintf("%s  %s  %s × %-3d %s",
			name,
			styles.MutedText.Render(variant),
			checkout.FormatPrice(it.Product.Price),
			it.Quantity,
			styles.Text.Bold(true).Render(checkout.FormatPrice(it.Subtotal())),
		)
		if i == m.cartRow {
			row = styles.Selected.Render("▸ ") + row
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderCartSummary())
	b.WriteString(m.renderSuggestions())
	return b.String()
}

func (m Model) renderCartSummary() string {
	styles := m.theme.Styles()
	pricing := m.pricing()
	s := pricing.CartSummary(m.shop.Cart.Total(), m.promo)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Order Summary"))
	b.WriteString("\n")
	b.WriteString(summaryRow("Subtotal", checkout.FormatPrice(s.Subtotal)))
	if s.FreeShipping() {
		b.WriteString(summaryRow("Shipping", styles.SuccessText.Render("Free")))
	} else {
		b.WriteString(summaryRow("Shipping", checkout.FormatPrice(s.Shipping)))
	}
	if s.PromoApplied {
		b.WriteString(summaryRow("Discount ("+strings.ToUpper(m.promo)+")",
			styles.SuccessText.Render(checkout.FormatPrice(s.Discount.Neg()))))
	}
	b.WriteString(summaryRow("Total", styles.Text.Bold(true).Render(checkout.FormatPrice(s.Total))))

	if !s.FreeShipping() {
		remaining := pricing.FreeShippingOver.Sub(s.Subtotal)
		b.WriteString(styles.InfoText.Render(
			fmt.Sprintf("Add %s more for free shipping", checkout.FormatPrice(remaining))))
		b.WriteString("\n")
	}

	if m.editingPromo {
		b.WriteString("\n")
		b.WriteString(m.promoInput.View())
		b.WriteString("\n")
	}

	return styles.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderSuggestions() string {
	if m.shop == nil {
		return ""
	}
	suggested := m.shop.Suggestions(suggestionCount)
	if len(suggested) == 0 {
		return ""
	}
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Bold(true).Render("You might also like"))
	for _, p := range suggested {
		b.WriteString("\n  ")
		b.WriteString(padRight(truncate(p.Name, 30), 30))
		b.WriteString("  ")
		b.WriteString(m.priceTag(p))
	}
	return b.String()
}

func summaryRow(label, value string) string {
	return padRight(label, 24) + value + "\n"
}
