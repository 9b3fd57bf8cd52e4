package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const brand = "Dopamine"

// renderHeader renders the logo, view tabs and bag counters.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	logo := styles.Logo.Render("◆ D ") + styles.Text.Bold(true).Render(brand)

	tabs := make([]string, 0, len(viewOrder))
	for i, v := range viewOrder {
		label := fmt.Sprintf("%d %s", i+1, v)
		if v == m.currentView {
			tabs = append(tabs, styles.ActiveTab.Render(label))
			continue
		}
		tabs = append(tabs, styles.Tab.Render(label))
	}

	var counts []string
	if m.shop != nil {
		counts = append(counts,
			m.counter("♥", m.shop.Wishlist.ItemCount()),
			m.counter("Bag", m.shop.Cart.ItemCount()),
		)
	}

	left := logo + "  " + strings.Join(tabs, "")
	right := strings.Join(counts, " ") + " " + styles.FaintText.Render(m.theme.Name)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Render(left + strings.Repeat(" ", gap) + right)
}

// counter renders a label with a badge that is hidden at zero.
func (m Model) counter(label string, n int) string {
	styles := m.theme.Styles()
	if n == 0 {
		return styles.MutedText.Render(label)
	}
	return styles.Text.Render(label) + styles.Badge.Render(badgeCount(n))
}

// badgeCount caps large counts the way storefront badges do.
func badgeCount(n int) string {
	if n > 99 {
		return "99+"
	}
	return fmt.Sprintf("%d", n)
}
