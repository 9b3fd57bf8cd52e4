package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/storefront/internal/checkout"
	"github.com/five82/storefront/internal/notify"
)

// handleCheckoutKey processes keyboard input for the checkout view.
func (m Model) handleCheckoutKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.order != nil {
		// Confirmation: enter continues shopping.
		if key.Matches(msg, m.keys.Confirm) {
			m.switchView(ViewProducts)
		}
		return m, nil
	}
	if !key.Matches(msg, m.keys.PlaceOrder) || m.shop == nil {
		return m, nil
	}
	if m.shop.Cart.ItemCount() == 0 {
		return m, m.pushToast(notify.NewError(0, "Your cart is empty"))
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.placing = true
	m.cancelOrder = cancel
	return m, tea.Batch(m.spinner.Tick, placeOrderCmd(ctx, m.shop.Checkout))
}

// abandonOrder cancels an order that is still processing.
func (m *Model) abandonOrder() {
	if m.cancelOrder != nil {
		m.cancelOrder()
	}
}

func (m Model) handleOrderPlaced(msg orderPlacedMsg) (tea.Model, tea.Cmd) {
	m.placing = false
	if m.cancelOrder != nil {
		m.cancelOrder()
		m.cancelOrder = nil
	}

	switch {
	case errors.Is(msg.err, context.Canceled):
		return m, m.pushToast(notify.NewError(0, "Order cancelled"))
	case msg.err != nil:
		m.logger.Warn("place order failed", zap.Error(msg.err))
		return m, m.pushToast(notify.NewError(0, "Could not place order"))
	}

	order := msg.order
	m.order = &order
	m.cartRow = 0
	m.promo = ""
	m.currentView = ViewCheckout
	return m, m.pushToast(notify.NewSuccess(0, "Order placed successfully!"))
}

// renderCheckout renders the order review, progress or confirmation.
func (m Model) renderCheckout() string {
	if m.order != nil {
		return m.renderConfirmation(*m.order)
	}

	styles := m.theme.Styles()
	if m.shop == nil || m.shop.Cart.ItemCount() == 0 {
		return styles.Text.Bold(true).Render("Nothing to check out") + "\n" +
			styles.MutedText.Render("Your cart is empty. Press 1 to browse products.")
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Checkout"))
	b.WriteString("\n\n")
	for _, it := range m.shop.Cart.Items() {
		label := it.Product.Name
		if v := it.Variant(); v != "" {
			label += " (" + v + ")"
		}
		b.WriteString(padRight(truncate(fmt.Sprintf("%s × %d", label, it.Quantity), 44), 46))
		b.WriteString(checkout.FormatPrice(it.Subtotal()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderSummary(m.shop.Checkout.Summary()))
	b.WriteString("\n\n")

	if m.placing {
		b.WriteString(m.spinner.View())
		b.WriteString(styles.AccentText.Render(" Processing..."))
	} else {
		b.WriteString(styles.MutedText.Render("Press enter to place your order."))
	}
	return b.String()
}

func (m Model) renderSummary(s checkout.Summary) string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(summaryRow("Subtotal", checkout.FormatPrice(s.Subtotal)))
	if s.FreeShipping() {
		b.WriteString(summaryRow("Shipping", styles.SuccessText.Render("Free")))
	} else {
		b.WriteString(summaryRow("Shipping", checkout.FormatPrice(s.Shipping)))
	}
	b.WriteString(summaryRow("Tax", checkout.FormatPrice(s.Tax)))
	b.WriteString(summaryRow("Total", styles.Text.Bold(true).Render(checkout.FormatPrice(s.Total))))
	return styles.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderConfirmation(o checkout.Order) string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.SuccessText.Render("✓ Order Confirmed!"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Thank you for your purchase. Your order has been successfully placed."))
	b.WriteString("\n\n")
	b.WriteString(summaryRow("Order Number", styles.Text.Bold(true).Render("#"+o.Number)))
	b.WriteString(summaryRow("Total Amount", styles.Text.Bold(true).Render(checkout.FormatPrice(o.Summary.Total))))
	b.WriteString(summaryRow("Estimated Delivery", checkout.EstimatedDelivery))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Press enter to continue shopping."))
	return styles.Panel.Render(b.String())
}
