package wishlist

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/storefront/internal/catalog"
)

// Change describes one committed transition.
type Change struct {
	Action Action
	Before State
	After  State
}

// Rejected reports whether the change was an Add of a product that was
// already saved.
func (c Change) Rejected() bool {
	a, ok := c.Action.(Add)
	return ok && c.Before.Contains(a.Product.ID)
}

// Effect reacts to a committed transition.
type Effect func(Change)

// Option configures a Service.
type Option func(*Service)

// OnCommit registers an effect that runs while the wishlist lock is held.
// It must not call back into the Service.
func OnCommit(e Effect) Option {
	return func(s *Service) { s.onCommit = append(s.onCommit, e) }
}

// After registers an effect that runs once the wishlist lock is released.
func After(e Effect) Option {
	return func(s *Service) { s.after = append(s.after, e) }
}

// WithClock sets the source of AddedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger for transition debug logs.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// Service is the only way to read or change the wishlist. Safe for
// concurrent use.
type Service struct {
	mu       sync.Mutex
	state    State
	onCommit []Effect
	after    []Effect
	now      func() time.Time
	logger   *zap.Logger
}

// New returns a wishlist holding the hydrated items.
func New(items []Item, opts ...Option) *Service {
	s := &Service{now: time.Now, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.state = Reduce(State{}, Load{Items: items})
	return s
}

// Add saves p. It reports false, leaving the wishlist unchanged, when p is
// already saved.
func (s *Service) Add(p catalog.Product) (State, bool) {
	change := s.dispatch(func(State) Action {
		return Add{Product: p, AddedAt: s.now().UTC()}
	})
	return change.After, !change.Rejected()
}

// Remove drops productID.
func (s *Service) Remove(productID string) State {
	return s.dispatch(func(State) Action { return Remove{ProductID: productID} }).After
}

// Clear empties the wishlist.
func (s *Service) Clear() State {
	return s.dispatch(func(State) Action { return Clear{} }).After
}

// Toggle removes p when it is saved and adds it otherwise. It reports
// whether p is saved afterwards.
func (s *Service) Toggle(p catalog.Product) (State, bool) {
	change := s.dispatch(func(cur State) Action {
		if cur.Contains(p.ID) {
			return Remove{ProductID: p.ID}
		}
		return Add{Product: p, AddedAt: s.now().UTC()}
	})
	return change.After, change.After.Contains(p.ID)
}

// Contains reports whether productID is saved.
func (s *Service) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Contains(productID)
}

// State returns a snapshot of the wishlist.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Items returns a copy of the saved items, oldest first.
func (s *Service) Items() []Item {
	return s.State().Items
}

// ItemCount returns the number of saved items.
func (s *Service) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ItemCount
}

// dispatch builds the action from the current state under the lock, so
// Toggle decides and applies atomically.
func (s *Service) dispatch(build func(State) Action) Change {
	s.mu.Lock()
	before := s.state
	a := build(before)
	after := Reduce(before, a)
	s.state = after
	change := Change{Action: a, Before: before.Clone(), After: after.Clone()}
	for _, e := range s.onCommit {
		e(change)
	}
	s.mu.Unlock()

	s.logger.Debug("wishlist transition",
		zap.String("action", fmt.Sprintf("%T", a)),
		zap.Int("items", change.After.ItemCount),
		zap.Bool("rejected", change.Rejected()),
	)
	for _, e := range s.after {
		e(change)
	}
	change.After = change.After.Clone()
	return change
}
