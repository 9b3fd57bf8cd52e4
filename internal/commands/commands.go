// Package commands builds the storefront command line: the TUI as the
// default action plus headless subcommands that drive the same engines.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/five82/storefront/internal/app"
	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/config"
	"github.com/five82/storefront/internal/logging"
	"github.com/five82/storefront/internal/notify"
	"github.com/five82/storefront/internal/shop"
)

var errUsage = errors.New("usage")

// Options configure the command tree.
type Options struct {
	Out io.Writer // nil means os.Stdout
	Err io.Writer // nil means os.Stderr
	// RunTUI starts the interactive storefront; nil uses app.Run.
	RunTUI func(ctx context.Context, opts app.Options) error
}

// New returns the storefront CLI.
func New(opts Options) *cli.App {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.RunTUI == nil {
		opts.RunTUI = app.Run
	}
	r := &runner{out: opts.Out}

	return &cli.App{
		Name:      "storefront",
		Usage:     "Dopamine storefront: browse, bag and check out from the terminal",
		Writer:    opts.Out,
		ErrWriter: opts.Err,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "config file path (default " + config.DefaultPath() + ")"},
			&cli.StringFlag{Name: "data-dir", Usage: "override the data directory"},
			&cli.BoolFlag{Name: "debug", Usage: "debug logging"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return fmt.Errorf("%w: unknown command %q", errUsage, c.Args().First())
			}
			return opts.RunTUI(c.Context, app.Options{
				ConfigPath: c.String("config"),
				DataDir:    c.String("data-dir"),
				Debug:      c.Bool("debug"),
			})
		},
		Commands: []*cli.Command{
			r.productsCommand(),
			r.cartCommand(),
			r.wishlistCommand(),
			r.checkoutCommand(),
			r.logsCommand(),
		},
	}
}

// runner carries what every subcommand shares.
type runner struct {
	out io.Writer
}

// withShop opens the shop for one subcommand and closes it afterwards,
// flushing pending writes.
func (r *runner) withShop(c *cli.Context, fn func(*shop.Shop) error) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = cfg.WithDataDir(c.String("data-dir"))

	logger, err := logging.New(logging.Options{
		Path:  cfg.LogPath(),
		Level: cfg.LogLevel,
		Debug: c.Bool("debug"),
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	products, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	s, err := shop.Open(c.Context, shop.Options{
		DataDir:       cfg.DataDir,
		Catalog:       products,
		Pricing:       &cfg.Checkout.Pricing,
		CheckoutDelay: cfg.Checkout.Delay,
		Notices:       notify.Multi(r.printer(), notify.Log(logger.Named("notice"))),
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("open shop: %w", err)
	}
	defer s.Close()

	logger.Debug("command", zap.String("name", c.Command.FullName()))
	return fn(s)
}

// printer writes notices to stdout.
func (r *runner) printer() notify.Sink {
	return notify.Func(func(n notify.Notice) {
		if n.Kind == notify.Error {
			fmt.Fprintln(r.out, "! "+n.Message)
			return
		}
		fmt.Fprintln(r.out, n.Message)
	})
}

func (r *runner) productsCommand() *cli.Command {
	return &cli.Command{
		Name:  "products",
		Usage: "list the catalogue",
		Action: func(c *cli.Context) error {
			return r.withShop(c, func(s *shop.Shop) error {
				fmt.Fprintln(r.out, productTable(s.Catalog.All(), s))
				return nil
			})
		},
	}
}

// productArg looks up the product named by the first argument.
func productArg(c *cli.Context, s *shop.Shop) (catalog.Product, error) {
	if c.NArg() < 1 {
		return catalog.Product{}, fmt.Errorf("%w: %s %s", errUsage, c.Command.FullName(), c.Command.ArgsUsage)
	}
	return s.Catalog.Lookup(c.Args().First())
}
