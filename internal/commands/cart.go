package commands

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/five82/storefront/internal/cart"
	"github.com/five82/storefront/internal/checkout"
	"github.com/five82/storefront/internal/shop"
)

func variantFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "size", Usage: "selected size"},
		&cli.StringFlag{Name: "color", Usage: "selected color"},
	}
}

func (r *runner) cartCommand() *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "inspect and change the shopping cart",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "show cart lines and the order summary",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "promo", Usage: "promo code to price with"},
				},
				Action: func(c *cli.Context) error {
					return r.withShop(c, func(s *shop.Shop) error {
						r.printCart(s, c.String("promo"))
						return nil
					})
				},
			},
			{
				Name:      "add",
				Usage:     "add a product",
				ArgsUsage: "PRODUCT_ID",
				Flags: append([]cli.Flag{
					&cli.IntFlag{Name: "qty", Value: 1, Usage: "quantity"},
				}, variantFlags()...),
				Action: func(c *cli.Context) error {
					return r.withShop(c, func(s *shop.Shop) error {
						p, err := productArg(c, s)
						if err != nil {
							return err
						}
						size, color := c.String("size"), c.String("color")
						if !p.HasSize(size) {
							return fmt.Errorf("%s has no size %q (sizes: %v)", p.Name, size, p.Sizes)
						}
						if !p.HasColor(color) {
							return fmt.Errorf("%s has no color %q (colors: %v)", p.Name, color, p.Colors)
						}
						if !p.InStock {
							return fmt.Errorf("%s is out of stock", p.Name)
						}
						_, err = s.Cart.Add(p, c.Int("qty"), cart.WithSize(size), cart.WithColor(color))
						return err
					})
				},
			},
			{
				Name:      "remove",
				Usage:     "remove a product, or one variant when --size or --color is set",
				ArgsUsage: "PRODUCT_ID",
				Flags:     variantFlags(),
				Action: func(c *cli.Context) error {
					return r.withShop(c, func(s *shop.Shop) error {
						id, err := cartArg(c, s)
						if err != nil {
							return err
						}
						if k, ok := lineKey(c, id); ok {
							if _, found := s.Cart.State().Line(k); !found {
								return fmt.Errorf("no %s line in cart", describeKey(k))
							}
							s.Cart.RemoveLine(k)
							return nil
						}
						s.Cart.Remove(id)
						return nil
					})
				},
			},
			{
				Name:      "update",
				Usage:     "set a quantity; zero or less removes",
				ArgsUsage: "PRODUCT_ID QTY",
				Flags:     variantFlags(),
				Action: func(c *cli.Context) error {
					return r.withShop(c, func(s *shop.Shop) error {
						id, err := cartArg(c, s)
						if err != nil {
							return err
						}
						qty, err := strconv.Atoi(c.Args().Get(1))
						if err != nil {
							return fmt.Errorf("%w: cart update PRODUCT_ID QTY: %v", errUsage, err)
						}
						if k, ok := lineKey(c, id); ok {
							s.Cart.UpdateLineQuantity(k, qty)
						} else {
							s.Cart.UpdateQuantity(id, qty)
						}
						r.printCart(s, "")
						return nil
					})
				},
			},
			{
				Name:  "clear",
				Usage: "empty the cart",
				Action: func(c *cli.Context) error {
					return r.withShop(c, func(s *shop.Shop) error {
						s.Cart.Clear()
						return nil
					})
				},
			},
			{
				Name:      "move",
				Usage:     "move a product from the cart to the wishlist",
				ArgsUsage: "PRODUCT_ID",
				Action: func(c *cli.Context) error {
					return r.withShop(c, func(s *shop.Shop) error {
						id, err := cartArg(c, s)
						if err != nil {
							return err
						}
						_, err = s.MoveToWishlist(id)
						return err
					})
				},
			},
		},
	}
}

// cartArg returns the product id argument, which must be in the cart.
func cartArg(c *cli.Context, s *shop.Shop) (string, error) {
	if c.NArg() < 1 {
		return "", fmt.Errorf("%w: %s %s", errUsage, c.Command.FullName(), c.Command.ArgsUsage)
	}
	id := c.Args().First()
	if !s.Cart.Has(id) {
		return "", fmt.Errorf("product %q is not in the cart", id)
	}
	return id, nil
}

// lineKey returns the line key when a variant flag selects one line.
func lineKey(c *cli.Context, id string) (cart.Key, bool) {
	if !c.IsSet("size") && !c.IsSet("color") {
		return cart.Key{}, false
	}
	return cart.Key{ProductID: id, Size: c.String("size"), Color: c.String("color")}, true
}

func describeKey(k cart.Key) string {
	l := cart.LineItem{SelectedSize: k.Size, SelectedColor: k.Color}
	if v := l.Variant(); v != "" {
		return k.ProductID + " (" + v + ")"
	}
	return k.ProductID
}

func (r *runner) printCart(s *shop.Shop, promo string) {
	st := s.Cart.State()
	if len(st.Items) == 0 {
		fmt.Fprintln(r.out, "Your cart is empty")
		return
	}
	fmt.Fprintln(r.out, cartTable(st.Items))

	pricing := s.Checkout.Pricing()
	if promo != "" && !pricing.ValidPromo(promo) {
		fmt.Fprintln(r.out, "! Invalid promo code")
	}
	sum := pricing.CartSummary(st.Total, promo)
	fmt.Fprintf(r.out, "Items:     %d\n", st.ItemCount)
	r.printSummary(sum, false)
}

func (r *runner) printSummary(sum checkout.Summary, withTax bool) {
	fmt.Fprintf(r.out, "Subtotal:  %s\n", checkout.FormatPrice(sum.Subtotal))
	if sum.FreeShipping() {
		fmt.Fprintln(r.out, "Shipping:  Free")
	} else {
		fmt.Fprintf(r.out, "Shipping:  %s\n", checkout.FormatPrice(sum.Shipping))
	}
	if sum.PromoApplied {
		fmt.Fprintf(r.out, "Discount:  %s\n", checkout.FormatPrice(sum.Discount.Neg()))
	}
	if withTax {
		fmt.Fprintf(r.out, "Tax:       %s\n", checkout.FormatPrice(sum.Tax))
	}
	fmt.Fprintf(r.out, "Total:     %s\n", checkout.FormatPrice(sum.Total))
}
