// Package cart implements the shopping cart state engine.
//
// # Model
//
// A cart is an ordered list of LineItem values. A line is identified by its
// Key: product id, selected size and selected color. Adding a product whose
// key is already present increments that line's quantity in place; any other
// add appends. State.Total and State.ItemCount are recomputed from the items
// on every transition.
//
// # Reducer
//
// Reduce is a pure function from (State, Action) to State. It performs no
// I/O and never writes to the slices of the state it is given, so the old
// state stays valid for readers that still hold it.
//
// Remove and UpdateQuantity match on product id only, which touches every
// variant of a product. RemoveLine and UpdateLineQuantity match the full key.
//
// # Service
//
// Service wraps the reducer with a mutex and two lists of effects:
//
//	s.mu.Lock()
//	next := Reduce(state, action)
//	OnCommit effects (persistence)
//	s.mu.Unlock()
//	After effects (notifications)
//
// Persistence runs under the lock so writes are enqueued in commit order.
// Notifications run after it so a sink may read the cart.
package cart
