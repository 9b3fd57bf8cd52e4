package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/five82/storefront/internal/catalog"
)

// ErrInvalidQuantity is returned by Service.Add for quantities below one.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Change describes one committed transition.
type Change struct {
	Action Action
	Before State
	After  State
}

// Effect reacts to a committed transition.
type Effect func(Change)

// Option configures a Service.
type Option func(*Service)

// OnCommit registers an effect that runs while the cart lock is held, so
// effects see transitions in commit order. It must not call back into the
// Service.
func OnCommit(e Effect) Option {
	return func(s *Service) { s.onCommit = append(s.onCommit, e) }
}

// After registers an effect that runs once the cart lock is released.
func After(e Effect) Option {
	return func(s *Service) { s.after = append(s.after, e) }
}

// WithLogger sets the logger used for debug tracing of transitions.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// Service is the only way to read or change the cart. All methods are safe
// for concurrent use; mutations are applied one at a time.
type Service struct {
	mu       sync.Mutex
	state    State
	onCommit []Effect
	after    []Effect
	logger   *zap.Logger
}

// New returns a cart holding the hydrated items. The items go through the
// same normalisation as a Load action; no effects fire for them.
func New(items []LineItem, opts ...Option) *Service {
	s := &Service{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.state = Reduce(State{}, Load{Items: items})
	return s
}

// AddOption selects a product variant for Add.
type AddOption func(*Add)

// WithSize selects a size.
func WithSize(size string) AddOption {
	return func(a *Add) { a.Size = size }
}

// WithColor selects a color.
func WithColor(color string) AddOption {
	return func(a *Add) { a.Color = color }
}

// Add puts qty of p into the cart, merging with an existing line of the same
// variant.
func (s *Service) Add(p catalog.Product, qty int, opts ...AddOption) (State, error) {
	if qty < 1 {
		return s.State(), fmt.Errorf("%w: got %d", ErrInvalidQuantity, qty)
	}
	a := Add{Product: p, Quantity: qty}
	for _, opt := range opts {
		opt(&a)
	}
	return s.dispatch(a), nil
}

// Remove drops every line for productID. Add merges on the full Key, so
// this also removes sibling variants; use RemoveLine to drop one.
func (s *Service) Remove(productID string) State {
	return s.dispatch(Remove{ProductID: productID})
}

// UpdateQuantity sets the quantity for productID. Quantities of zero or less
// remove the product.
func (s *Service) UpdateQuantity(productID string, qty int) State {
	return s.dispatch(UpdateQuantity{ProductID: productID, Quantity: qty})
}

// RemoveLine drops one variant.
func (s *Service) RemoveLine(k Key) State {
	return s.dispatch(RemoveLine{Key: k})
}

// UpdateLineQuantity sets the quantity of one variant.
func (s *Service) UpdateLineQuantity(k Key, qty int) State {
	return s.dispatch(UpdateLineQuantity{Key: k, Quantity: qty})
}

// Clear empties the cart.
func (s *Service) Clear() State {
	return s.dispatch(Clear{})
}

// State returns a snapshot of the cart.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Items returns a copy of the cart lines.
func (s *Service) Items() []LineItem {
	return s.State().Items
}

// Total returns the sum of price times quantity over every line.
func (s *Service) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Total
}

// ItemCount returns the total quantity across lines.
func (s *Service) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ItemCount
}

// Has reports whether any line holds productID.
func (s *Service) Has(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Has(productID)
}

func (s *Service) dispatch(a Action) State {
	s.mu.Lock()
	before := s.state
	after := Reduce(before, a)
	s.state = after
	change := Change{Action: a, Before: before.Clone(), After: after.Clone()}
	for _, e := range s.onCommit {
		e(change)
	}
	snapshot := after.Clone()
	s.mu.Unlock()

	s.logger.Debug("cart transition",
		zap.String("action", fmt.Sprintf("%T", a)),
		zap.Int("lines", len(snapshot.Items)),
		zap.Int("items", snapshot.ItemCount),
		zap.Stringer("total", snapshot.Total),
	)
	for _, e := range s.after {
		e(change)
	}
	return snapshot
}
