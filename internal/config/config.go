package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"

	"github.com/five82/storefront/internal/checkout"
)

// Config captures the storefront host settings.
type Config struct {
	DataDir  string
	Catalog  string // empty selects the built-in catalogue
	LogLevel string
	Checkout Checkout
}

// Checkout holds order pricing and the simulated processing delay.
type Checkout struct {
	Delay   time.Duration
	Pricing checkout.Pricing
}

const (
	defaultConfigPath = "~/.config/storefront/config.toml"
	defaultDataDir    = "~/.local/share/storefront"
	defaultLogLevel   = "info"
	logFileName       = "storefront.log"
)

type rawConfig struct {
	DataDir  string `toml:"data_dir"`
	Catalog  string `toml:"catalog"`
	LogLevel string `toml:"log_level"`
	Checkout struct {
		Delay            string `toml:"delay"`
		FreeShippingOver string `toml:"free_shipping_over"`
		ShippingFee      string `toml:"shipping_fee"`
		TaxRate          string `toml:"tax_rate"`
		PromoCode        string `toml:"promo_code"`
		PromoRate        string `toml:"promo_rate"`
	} `toml:"checkout"`
}

type envOverrides struct {
	DataDir       string         `env:"STOREFRONT_DATA_DIR"`
	Catalog       string         `env:"STOREFRONT_CATALOG"`
	LogLevel      string         `env:"STOREFRONT_LOG_LEVEL"`
	CheckoutDelay *time.Duration `env:"STOREFRONT_CHECKOUT_DELAY"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DataDir:  mustExpand(defaultDataDir),
		LogLevel: defaultLogLevel,
		Checkout: Checkout{
			Delay:   checkout.DefaultDelay,
			Pricing: checkout.DefaultPricing(),
		},
	}
}

// Load locates and parses the storefront config, falling back to defaults
// when missing, then applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.apply(bytes); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) apply(data []byte) error {
	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if dir := strings.TrimSpace(raw.DataDir); dir != "" {
		c.DataDir = mustExpand(dir)
	}
	if catalog := strings.TrimSpace(raw.Catalog); catalog != "" {
		c.Catalog = mustExpand(catalog)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		c.LogLevel = strings.ToLower(level)
	}

	rc := raw.Checkout
	if d := strings.TrimSpace(rc.Delay); d != "" {
		delay, err := time.ParseDuration(d)
		if err != nil {
			return fmt.Errorf("parse checkout.delay: %w", err)
		}
		c.Checkout.Delay = delay
	}
	p := &c.Checkout.Pricing
	for _, f := range []struct {
		name  string
		value string
		dst   *decimal.Decimal
	}{
		{"free_shipping_over", rc.FreeShippingOver, &p.FreeShippingOver},
		{"shipping_fee", rc.ShippingFee, &p.ShippingFee},
		{"tax_rate", rc.TaxRate, &p.TaxRate},
		{"promo_rate", rc.PromoRate, &p.PromoRate},
	} {
		v := strings.TrimSpace(f.value)
		if v == "" {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("parse checkout.%s: %w", f.name, err)
		}
		if d.IsNegative() {
			return fmt.Errorf("checkout.%s must not be negative", f.name)
		}
		*f.dst = d
	}
	if code := strings.TrimSpace(rc.PromoCode); code != "" {
		p.PromoCode = code
	}
	return nil
}

func (c *Config) applyEnv() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	if dir := strings.TrimSpace(o.DataDir); dir != "" {
		c.DataDir = mustExpand(dir)
	}
	if catalog := strings.TrimSpace(o.Catalog); catalog != "" {
		c.Catalog = mustExpand(catalog)
	}
	if level := strings.TrimSpace(o.LogLevel); level != "" {
		c.LogLevel = strings.ToLower(level)
	}
	if o.CheckoutDelay != nil {
		c.Checkout.Delay = *o.CheckoutDelay
	}
	return nil
}

// LogPath returns the TUI log file inside the data directory.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir + "/" + logFileName)
	}
	return filepath.Join(c.DataDir, logFileName)
}

// WithDataDir returns a copy of c using dir, expanded, when dir is set.
func (c Config) WithDataDir(dir string) Config {
	if strings.TrimSpace(dir) != "" {
		c.DataDir = mustExpand(dir)
	}
	return c
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
