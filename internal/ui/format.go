package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/checkout"
)

// truncate cuts s to width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return lipgloss.NewStyle().MaxWidth(width-1).Render(s) + "…"
}

// padRight pads s with spaces to width cells.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// stars renders a five star rating rounded to whole stars.
func stars(rating float64) string {
	full := min(max(int(math.Round(rating)), 0), 5)
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
}

// priceTag renders the price with any markdown.
func (m Model) priceTag(p catalog.Product) string {
	styles := m.theme.Styles()
	pct := p.DiscountPercent()
	if pct == 0 {
		return styles.Text.Bold(true).Render(checkout.FormatPrice(p.Price))
	}
	return styles.SaleText.Render(checkout.FormatPrice(p.Price)) + " " +
		styles.FaintText.Strikethrough(true).Render(checkout.FormatPrice(*p.OriginalPrice)) + " " +
		styles.SaleText.Render(fmt.Sprintf("-%d%%", pct))
}

// badges renders the NEW and SALE markers.
func (m Model) badges(p catalog.Product) string {
	styles := m.theme.Styles()
	var out []string
	if p.IsNew {
		out = append(out, styles.AccentText.Render("NEW"))
	}
	if p.OnSale {
		out = append(out, styles.SaleText.Render("SALE"))
	}
	if !p.InStock {
		out = append(out, styles.DangerText.Render("SOLD OUT"))
	}
	return strings.Join(out, " ")
}

// options renders choices with the selected one highlighted.
func (m Model) options(choices []string, selected string) string {
	styles := m.theme.Styles()
	parts := make([]string, len(choices))
	for i, c := range choices {
		if c == selected {
			parts[i] = styles.Selected.Render(" " + c + " ")
			continue
		}
		parts[i] = styles.MutedText.Render(" " + c + " ")
	}
	return strings.Join(parts, " ")
}
