package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/five82/storefront/internal/shop"
)

func (r *runner) wishlistCommand() *cli.Command {
	return &cli.Command{
		Name:  "wishlist",
		Usage: "inspect and change the wishlist",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "show saved items",
				Action: func(c *cli.Context) error {
					return r.withShop(c, func(s *shop.Shop) error {
						items := s.Wishlist.Items()
						if len(items) == 0 {
							fmt.Fprintln(r.out, "Your wishlist is empty")
							return nil
						}
						fmt.Fprintln(r.out, wishlistTable(items))
						return nil
					})
				},
			},
			{
				Name:      "add",
				Usage:     "save a product",
				ArgsUsage: "PRODUCT_ID",
				Action: func(c *cli.Context) error {
					return r.withShop(c, func(s *shop.Shop) error {
						p, err := productArg(c, s)
						if err != nil {
							return err
						}
						// A duplicate is reported by the wishlist's own notice.
						s.Wishlist.Add(p)
						return nil
					})
				},
			},
			{
				Name:      "remove",
				Usage:     "remove a saved product",
				ArgsUsage: "PRODUCT_ID",
				Action: func(c *cli.Context) error {
					return r.withShop(c, func(s *shop.Shop) error {
						if c.NArg() < 1 {
							return fmt.Errorf("%w: wishlist remove PRODUCT_ID", errUsage)
						}
						id := c.Args().First()
						if !s.Wishlist.Contains(id) {
							return fmt.Errorf("product %q is not in the wishlist", id)
						}
						s.Wishlist.Remove(id)
						return nil
					})
				},
			},
			{
				Name:  "clear",
				Usage: "remove every saved product",
				Action: func(c *cli.Context) error {
					return r.withShop(c, func(s *shop.Shop) error {
						s.Wishlist.Clear()
						return nil
					})
				},
			},
		},
	}
}
