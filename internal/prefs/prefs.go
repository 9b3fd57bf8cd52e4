// Package prefs handles storefront UI preferences.
// Preferences are stored as TOML under the "prefs.toml" storage key, next to
// the cart and wishlist.
package prefs

import (
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/storefront/internal/storage"
)

// Prefs holds user preferences for the storefront.
type Prefs struct {
	Theme string `toml:"theme"`
}

const (
	// StorageKey is the key preferences are kept under.
	StorageKey   = "prefs.toml"
	defaultTheme = "Dracula"
)

// Default returns the preferences used when nothing is stored.
func Default() Prefs {
	return Prefs{Theme: defaultTheme}
}

// Load reads preferences from store, falling back to defaults if missing.
func Load(store storage.Store) Prefs {
	prefs := Default()
	if store == nil {
		return prefs
	}

	raw, ok, err := store.Get(StorageKey)
	if err != nil || !ok {
		return prefs // Graceful degradation
	}

	if err := toml.Unmarshal([]byte(raw), &prefs); err != nil {
		return Default() // Graceful degradation
	}

	prefs.Theme = strings.TrimSpace(prefs.Theme)
	if prefs.Theme == "" {
		prefs.Theme = defaultTheme
	}

	return prefs
}

// Save writes preferences to store.
func Save(store storage.Store, p Prefs) error {
	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := store.Set(StorageKey, string(bytes)); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}
