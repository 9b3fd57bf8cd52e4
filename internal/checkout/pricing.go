// Package checkout prices an order and simulates placing it.
package checkout

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Pricing holds the order summary rules.
type Pricing struct {
	// Shipping is free when the subtotal is strictly greater than this.
	FreeShippingOver decimal.Decimal
	ShippingFee      decimal.Decimal
	TaxRate          decimal.Decimal
	// PromoCode is matched case-insensitively. Empty disables promos.
	PromoCode string
	PromoRate decimal.Decimal
}

// DefaultPricing returns the storefront's standard rules.
func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingOver: decimal.NewFromInt(50),
		ShippingFee:      decimal.RequireFromString("9.99"),
		TaxRate:          decimal.RequireFromString("0.08"),
		PromoCode:        "DOPAMINE10",
		PromoRate:        decimal.RequireFromString("0.10"),
	}
}

// Summary is a priced order. Amounts are exact; round with FormatPrice.
type Summary struct {
	Subtotal     decimal.Decimal
	Shipping     decimal.Decimal
	Discount     decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
	PromoApplied bool
}

// FreeShipping reports whether shipping costs nothing.
func (s Summary) FreeShipping() bool {
	return s.Shipping.IsZero()
}

// Shipping returns the shipping charge for subtotal.
func (p Pricing) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(p.FreeShippingOver) {
		return decimal.Zero
	}
	return p.ShippingFee
}

// ValidPromo reports whether code is the configured promo code.
func (p Pricing) ValidPromo(code string) bool {
	want := strings.TrimSpace(p.PromoCode)
	return want != "" && strings.EqualFold(strings.TrimSpace(code), want)
}

// CartSummary prices the cart page: subtotal plus shipping, less the promo
// discount when promo is valid. Tax is not shown on the cart page.
func (p Pricing) CartSummary(subtotal decimal.Decimal, promo string) Summary {
	s := Summary{
		Subtotal: subtotal,
		Shipping: p.Shipping(subtotal),
		Discount: decimal.Zero,
		Tax:      decimal.Zero,
	}
	if p.ValidPromo(promo) {
		s.Discount = subtotal.Mul(p.PromoRate)
		s.PromoApplied = true
	}
	s.Total = subtotal.Add(s.Shipping).Sub(s.Discount)
	return s
}

// CheckoutSummary prices the checkout page: subtotal plus shipping plus
// tax on the subtotal.
func (p Pricing) CheckoutSummary(subtotal decimal.Decimal) Summary {
	s := Summary{
		Subtotal: subtotal,
		Shipping: p.Shipping(subtotal),
		Discount: decimal.Zero,
		Tax:      subtotal.Mul(p.TaxRate),
	}
	s.Total = subtotal.Add(s.Shipping).Add(s.Tax)
	return s
}

// FormatPrice renders d as dollars rounded to cents, e.g. "$1,299.99".
func FormatPrice(d decimal.Decimal) string {
	cents := d.Abs().Round(2)
	_, frac, _ := strings.Cut(cents.StringFixed(2), ".")

	sign := ""
	if d.IsNegative() && !cents.IsZero() {
		sign = "-"
	}
	return sign + "$" + humanize.BigComma(cents.BigInt()) + "." + frac
}
