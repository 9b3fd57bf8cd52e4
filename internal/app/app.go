package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/config"
	"github.com/five82/storefront/internal/logging"
	"github.com/five82/storefront/internal/notify"
	"github.com/five82/storefront/internal/prefs"
	"github.com/five82/storefront/internal/shop"
	"github.com/five82/storefront/internal/ui"
)

// Options configure the storefront application.
type Options struct {
	ConfigPath string
	DataDir    string // overrides the configured data_dir when set
	Debug      bool
}

const noticeBuffer = 32

// Run boots the storefront TUI until the context is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = cfg.WithDataDir(opts.DataDir)

	// The terminal belongs to Bubble Tea, so logs go to a file.
	logger, err := logging.New(logging.Options{
		Path:  cfg.LogPath(),
		Level: cfg.LogLevel,
		Debug: opts.Debug,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	products, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	queue := notify.NewQueue(noticeBuffer)
	s, err := shop.Open(ctx, shop.Options{
		DataDir:       cfg.DataDir,
		Catalog:       products,
		Pricing:       &cfg.Checkout.Pricing,
		CheckoutDelay: cfg.Checkout.Delay,
		Notices:       notify.Multi(queue, notify.Log(logger.Named("notice"))),
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("open shop: %w", err)
	}
	defer s.Close()

	userPrefs := prefs.Load(s.Store)
	logger.Info("starting ui",
		zap.String("data_dir", cfg.DataDir),
		zap.String("theme", userPrefs.Theme),
	)

	err = ui.Run(ui.Options{
		Context:   ctx,
		Shop:      s,
		Notices:   queue,
		ThemeName: userPrefs.Theme,
		Logger:    logger.Named("ui"),
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		// Interrupted by a signal, not a crash.
		return nil
	}
	return err
}
