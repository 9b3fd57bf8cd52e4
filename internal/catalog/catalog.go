package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
)

//go:embed products.toml
var defaultCatalog []byte

// ErrUnknownProduct is returned when a product id is not in the catalogue.
var ErrUnknownProduct = errors.New("unknown product")

// Catalog is an immutable, ordered list of products keyed by id.
type Catalog struct {
	products []Product
	index    map[string]int
}

type document struct {
	Products []Product `toml:"products"`
}

// Default returns the built-in mock catalogue.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a TOML catalogue from path. An empty path selects the built-in
// catalogue.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a TOML catalogue document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(doc.Products)
}

// New builds a catalogue from products, rejecting invalid records and
// duplicate ids.
func New(products []Product) (*Catalog, error) {
	v := Validator()
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
	}
	for i, p := range products {
		p.ID = strings.TrimSpace(p.ID)
		if err := v.Struct(p); err != nil {
			return nil, fmt.Errorf("product %d (%q): %w", i, p.ID, err)
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, fmt.Errorf("product %d: duplicate id %q", i, p.ID)
		}
		c.index[p.ID] = len(c.products)
		c.products = append(c.products, p.Clone())
	}
	return c, nil
}

// All returns a copy of every product in catalogue order.
func (c *Catalog) All() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, len(c.products))
	for i, p := range c.products {
		out[i] = p.Clone()
	}
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}

// Find looks a product up by id.
func (c *Catalog) Find(id string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	i, ok := c.index[strings.TrimSpace(id)]
	if !ok {
		return Product{}, false
	}
	return c.products[i].Clone(), true
}

// Lookup is Find returning ErrUnknownProduct on a miss.
func (c *Catalog) Lookup(id string) (Product, error) {
	p, ok := c.Find(id)
	if !ok {
		return Product{}, fmt.Errorf("%w: %q", ErrUnknownProduct, id)
	}
	return p, nil
}

// Suggestions returns up to n products, in catalogue order, for which
// exclude returns false.
func (c *Catalog) Suggestions(exclude func(id string) bool, n int) []Product {
	if c == nil || n <= 0 {
		return nil
	}
	var out []Product
	for _, p := range c.products {
		if exclude != nil && exclude(p.ID) {
			continue
		}
		out = append(out, p.Clone())
		if len(out) == n {
			break
		}
	}
	return out
}

// Validator returns a validator that understands decimal.Decimal fields as
// numbers, so tags like gte=0 apply to prices.
func Validator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}
