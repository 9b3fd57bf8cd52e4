package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/storefront/internal/cart"
)

// ErrEmptyCart is returned when placing an order with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

// DefaultDelay is the simulated order processing time.
const DefaultDelay = 3 * time.Second

// Cart is the part of the cart facade checkout needs.
type Cart interface {
	State() cart.State
	Clear() cart.State
}

// EstimatedDelivery is shown with every confirmed order.
const EstimatedDelivery = "3-5 business days"

// Order is a placed order.
type Order struct {
	Number   string
	Items    []cart.LineItem
	Summary  Summary
	PlacedAt time.Time
}

// Options configure a Service.
type Options struct {
	Pricing *Pricing      // nil uses DefaultPricing
	Delay   time.Duration // zero uses DefaultDelay; negative means no delay
	Logger  *zap.Logger
	Now     func() time.Time
}

// Service places orders against a cart.
type Service struct {
	cart    Cart
	pricing Pricing
	delay   time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

// New returns a checkout service for c.
func New(c Cart, opts Options) *Service {
	s := &Service{
		cart:    c,
		pricing: DefaultPricing(),
		delay:   opts.Delay,
		logger:  opts.Logger,
		now:     opts.Now,
	}
	if opts.Pricing != nil {
		s.pricing = *opts.Pricing
	}
	if s.delay == 0 {
		s.delay = DefaultDelay
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Pricing returns the rules the service prices with.
func (s *Service) Pricing() Pricing {
	return s.pricing
}

// Summary prices the current cart for the checkout page.
func (s *Service) Summary() Summary {
	return s.pricing.CheckoutSummary(s.cart.State().Total)
}

// PlaceOrder snapshots the cart, waits out the processing delay and clears
// the cart. Cancelling ctx during the delay abandons the order and leaves
// the cart as it was.
func (s *Service) PlaceOrder(ctx context.Context) (Order, error) {
	snapshot := s.cart.State()
	if len(snapshot.Items) == 0 {
		return Order{}, ErrEmptyCart
	}
	order := Order{
		Number:  orderNumber(),
		Items:   snapshot.Items,
		Summary: s.pricing.CheckoutSummary(snapshot.Total),
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			s.logger.Info("order abandoned", zap.String("order", order.Number), zap.Error(ctx.Err()))
			return Order{}, fmt.Errorf("place order: %w", ctx.Err())
		case <-timer.C:
		}
	}

	order.PlacedAt = s.now()
	s.cart.Clear()
	s.logger.Info("order placed",
		zap.String("order", order.Number),
		zap.Int("lines", len(order.Items)),
		zap.String("total", order.Summary.Total.StringFixed(2)),
	)
	return order, nil
}

func orderNumber() string {
	id := uuid.New().String()
	return "DP" + strings.ToUpper(id[:8])
}
