package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/five82/storefront/internal/checkout"
	"github.com/five82/storefront/internal/shop"
)

func (r *runner) checkoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "checkout",
		Usage: "place an order for the cart",
		Action: func(c *cli.Context) error {
			return r.withShop(c, func(s *shop.Shop) error {
				if s.Cart.ItemCount() == 0 {
					return checkout.ErrEmptyCart
				}
				r.printSummary(s.Checkout.Summary(), true)
				fmt.Fprintln(r.out, "Processing...")

				order, err := s.Checkout.PlaceOrder(c.Context)
				if err != nil {
					return err
				}
				fmt.Fprintln(r.out, "Order Confirmed!")
				fmt.Fprintf(r.out, "Order Number:       #%s\n", order.Number)
				fmt.Fprintf(r.out, "Total Amount:       %s\n", checkout.FormatPrice(order.Summary.Total))
				fmt.Fprintf(r.out, "Estimated Delivery: %s\n", checkout.EstimatedDelivery)
				return nil
			})
		},
	}
}
