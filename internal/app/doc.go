// Package app provides the composition root for the storefront TUI.
//
// # Overview
//
// Run wires configuration, logging, the product catalogue, the shop engines
// and the Bubble Tea UI:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()      TOML + STOREFRONT_* overrides
//	       ├─────> logging.New()      JSON log at <data_dir>/storefront.log
//	       ├─────> catalog.Load()     built-in or configured products
//	       ├─────> shop.Open()        hydrate cart + wishlist, start writer
//	       ├─────> prefs.Load()       theme
//	       └─────> ui.Run()           blocks until quit
//
// Notices from the cart and wishlist go to a notify.Queue drained by the UI
// and are also logged.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file unreadable or invalid
//   - Log file cannot be created
//   - Configured catalogue missing or invalid
//   - Data directory cannot be created
//
// Recoverable errors (logged, the UI keeps running):
//   - Corrupt or unreadable cart/wishlist data (starts empty)
//   - Failed storage writes
//   - Failed preference writes
//
// On return, pending cart and wishlist writes are flushed before the
// process exits.
package app
