// Package ui provides the Bubble Tea terminal storefront.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea Model over a *shop.Shop. It never holds cart
// or wishlist state of its own: every keypress that changes the bag or the
// saved list calls the matching facade method, and every render reads a
// fresh snapshot back. Notices raised by the facades arrive through a
// notify.Queue and are shown as toasts that expire after the notice's
// duration.
//
// # Package Structure
//
//   - app.go: Model, Update loop, global keys, messages and Run
//   - header.go: logo, view tabs and the wishlist/bag badges
//   - products.go: catalogue list, variant picker and add to cart
//   - cart.go: bag lines, promo code field, summary and suggestions
//   - wishlist.go: saved items
//   - checkout.go: order review, processing spinner and confirmation
//   - toast.go: transient notices
//   - keys.go, help.go: key bindings and the help overlay
//   - theme.go: colour themes
//
// # Views
//
//   - Products: browse the catalogue, pick size, color and quantity
//   - Cart: adjust lines, apply a promo code, move items to the wishlist
//   - Wishlist: saved items, add to cart or remove
//   - Checkout: review totals with tax and place the order
//
// # Key Bindings
//
//   - 1-4 or tab/shift+tab: switch views
//   - j/k: move the cursor
//   - a or enter: add to cart
//   - s/c: cycle size/color
//   - +/-: change quantity
//   - w: toggle wishlist
//   - x: remove, C: clear, m: move to wishlist
//   - p: promo code, o: go to checkout
//   - T: cycle theme
//   - ?: help
//   - q or ctrl+c: quit
package ui
