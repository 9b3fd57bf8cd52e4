package catalog

import (
	"github.com/shopspring/decimal"
)

// Product is a read-only catalogue record. Cart and wishlist entries embed it
// by value, so the JSON field names double as the persisted storage shape.
type Product struct {
	ID            string           `json:"id" toml:"id" validate:"required"`
	Name          string           `json:"name" toml:"name" validate:"required"`
	Description   string           `json:"description,omitempty" toml:"description"`
	Price         decimal.Decimal  `json:"price" toml:"price" validate:"gte=0"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty" toml:"original_price" validate:"omitempty,gte=0"`
	Images        []string         `json:"images,omitempty" toml:"images"`
	Category      string           `json:"category,omitempty" toml:"category"`
	Brand         string           `json:"brand,omitempty" toml:"brand"`
	Rating        float64          `json:"rating,omitempty" toml:"rating" validate:"gte=0,lte=5"`
	ReviewCount   int              `json:"reviewCount,omitempty" toml:"review_count" validate:"gte=0"`
	InStock       bool             `json:"inStock" toml:"in_stock"`
	Sizes         []string         `json:"sizes,omitempty" toml:"sizes"`
	Colors        []string         `json:"colors,omitempty" toml:"colors"`
	Tags          []string         `json:"tags,omitempty" toml:"tags"`
	Featured      bool             `json:"featured,omitempty" toml:"featured"`
	IsNew         bool             `json:"isNew,omitempty" toml:"is_new"`
	OnSale        bool             `json:"onSale,omitempty" toml:"on_sale"`
}

// DiscountPercent returns the whole-number markdown from OriginalPrice to
// Price, or 0 when the product is not discounted.
func (p Product) DiscountPercent() int {
	if p.OriginalPrice == nil || !p.OriginalPrice.IsPositive() {
		return 0
	}
	if p.Price.GreaterThanOrEqual(*p.OriginalPrice) {
		return 0
	}
	pct := p.OriginalPrice.Sub(p.Price).Div(*p.OriginalPrice).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}

// HasSize reports whether size is one of the product's offered sizes.
// Products without sizes accept only the empty selection.
func (p Product) HasSize(size string) bool {
	return offers(p.Sizes, size)
}

// HasColor reports whether color is one of the product's offered colors.
func (p Product) HasColor(color string) bool {
	return offers(p.Colors, color)
}

func offers(options []string, choice string) bool {
	if choice == "" {
		return true
	}
	for _, o := range options {
		if o == choice {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can hand the value out without
// sharing slices with the catalogue.
func (p Product) Clone() Product {
	dup := p
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		dup.OriginalPrice = &op
	}
	dup.Images = cloneStrings(p.Images)
	dup.Sizes = cloneStrings(p.Sizes)
	dup.Colors = cloneStrings(p.Colors)
	dup.Tags = cloneStrings(p.Tags)
	return dup
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
