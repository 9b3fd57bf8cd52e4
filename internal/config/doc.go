// Package config loads the storefront configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/storefront/config.toml
//  3. If the file doesn't exist, start from built-in defaults
//  4. Fields that are missing or blank keep their defaults
//  5. STOREFRONT_* environment variables override the result
//
// # TOML Format
//
//	data_dir = "~/.local/share/storefront"
//	catalog = ""            # empty uses the built-in products
//	log_level = "info"
//
//	[checkout]
//	delay = "3s"
//	free_shipping_over = "50"
//	shipping_fee = "9.99"
//	tax_rate = "0.08"
//	promo_code = "DOPAMINE10"
//	promo_rate = "0.10"
//
// Money and rates are decimal strings. Tilde expansion is applied to
// data_dir and catalog.
//
// # Environment
//
//   - STOREFRONT_DATA_DIR
//   - STOREFRONT_CATALOG
//   - STOREFRONT_LOG_LEVEL
//   - STOREFRONT_CHECKOUT_DELAY (Go duration, e.g. "500ms")
//
// # Error Handling
//
// Missing config files are NOT an error. Load returns errors for path
// expansion failures, unreadable files, TOML syntax errors, malformed
// durations or amounts, negative amounts and malformed environment values.
package config
