// Package store owns the authoritative in-memory cart state. All consumers
// read through snapshots or change subscriptions and request mutation through
// the exported operations; nothing else writes cart state.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/cgdmohamed/drznmobile-sub000/internal/domain"
	"github.com/cgdmohamed/drznmobile-sub000/internal/repository"
	apperrors "github.com/cgdmohamed/drznmobile-sub000/pkg/errors"
)

var cartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Total number of cart mutations by operation",
	},
	[]string{"op"},
)

// EventPublisher publishes cart domain events after mutations. Publish
// failures are logged by the store and never propagated to callers.
type EventPublisher interface {
	PublishCartUpdated(ctx context.Context, cart *domain.Cart) error
	PublishCartCleared(ctx context.Context, cartID string) error
}

// Store is the single source of truth for one cart. Mutations are applied
// strictly in call order: each operation recomputes derived totals and
// persists the snapshot before returning control to the caller. Persistence
// and event publishing failures are absorbed; the in-memory cart remains
// authoritative for the session.
type Store struct {
	mu       sync.Mutex
	cart     *domain.Cart
	shipping *domain.SelectedShippingMethod

	repo      repository.CartRepository
	publisher EventPublisher
	discounts DiscountPolicy
	logger    *slog.Logger

	subs      map[int]chan domain.Cart
	nextSubID int
}

// New creates a store for the given cart ID with an empty cart.
// The publisher may be nil when events are not wired.
func New(cartID string, repo repository.CartRepository, publisher EventPublisher, discounts DiscountPolicy, logger *slog.Logger) *Store {
	return &Store{
		cart:      domain.NewCart(cartID),
		repo:      repo,
		publisher: publisher,
		discounts: discounts,
		logger:    logger,
		subs:      make(map[int]chan domain.Cart),
	}
}

// Restore replaces the in-memory state with the persisted snapshot, if one
// exists. Missing or unreadable state leaves the empty cart in place.
func (s *Store) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.repo.LoadCart(ctx, s.cart.ID)
	if err != nil {
		if apperrors.HTTPStatus(err) != 404 {
			s.logger.WarnContext(ctx, "failed to restore cart, starting empty",
				slog.String("cart_id", s.cart.ID),
				slog.String("error", err.Error()),
			)
		}
		return
	}
	s.cart = cart

	method, err := s.repo.LoadShippingMethod(ctx, s.cart.ID)
	if err == nil {
		s.shipping = method
	}
}

// Snapshot returns a copy of the current cart.
func (s *Store) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// ShippingMethod returns the current shipping method selection, or nil.
func (s *Store) ShippingMethod() *domain.SelectedShippingMethod {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shipping == nil {
		return nil
	}
	cp := *s.shipping
	return &cp
}

// Subscribe registers a change observer. The returned channel receives a cart
// snapshot after every mutation, in mutation order. A slow observer misses
// intermediate snapshots rather than blocking mutations. The cancel function
// removes the subscription and closes the channel.
func (s *Store) Subscribe() (<-chan domain.Cart, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan domain.Cart, 16)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// AddItem adds a product to the cart. If the product is already present its
// quantity accumulates; otherwise a new line item is appended. Quantities
// below 1 default to 1. No stock bound is enforced here.
func (s *Store) AddItem(ctx context.Context, product domain.Product, quantity int) domain.Cart {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.cart.FindItemIndex(product.ID); i >= 0 {
		s.cart.Items[i].Quantity += quantity
		// Refresh the captured product snapshot in case prices changed.
		s.cart.Items[i].Product = product
	} else {
		s.cart.Items = append(s.cart.Items, domain.LineItem{Product: product, Quantity: quantity})
	}

	cartMutationsTotal.WithLabelValues("add_item").Inc()
	return s.commit(ctx)
}

// UpdateQuantity replaces the quantity of the matching line item in place.
// A quantity of zero or less removes the item. Unknown product IDs are a
// no-op apart from recalculation.
func (s *Store) UpdateQuantity(ctx context.Context, productID int64, quantity int) domain.Cart {
	if quantity <= 0 {
		return s.RemoveItem(ctx, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.cart.FindItemIndex(productID); i >= 0 {
		s.cart.Items[i].Quantity = quantity
	}

	cartMutationsTotal.WithLabelValues("update_quantity").Inc()
	return s.commit(ctx)
}

// RemoveItem filters out the line item for the given product ID.
func (s *Store) RemoveItem(ctx context.Context, productID int64) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.cart.FindItemIndex(productID); i >= 0 {
		s.cart.Items = append(s.cart.Items[:i], s.cart.Items[i+1:]...)
	}

	cartMutationsTotal.WithLabelValues("remove_item").Inc()
	return s.commit(ctx)
}

// Clear resets the cart to empty and drops the selected shipping method.
func (s *Store) Clear(ctx context.Context) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.cart.ID
	created := s.cart.CreatedAt
	s.cart = domain.NewCart(id)
	s.cart.CreatedAt = created
	s.shipping = nil

	if err := s.repo.DeleteCart(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "failed to delete persisted cart",
			slog.String("cart_id", id),
			slog.String("error", err.Error()),
		)
	}
	if err := s.repo.DeleteShippingMethod(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "failed to delete persisted shipping method",
			slog.String("cart_id", id),
			slog.String("error", err.Error()),
		)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishCartCleared(ctx, id); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
				slog.String("cart_id", id),
				slog.String("error", err.Error()),
			)
		}
	}

	cartMutationsTotal.WithLabelValues("clear").Inc()

	snapshot := s.cart.Clone()
	s.notify(snapshot)
	return snapshot
}

// ApplyDiscount validates the promo code against the configured policy and,
// on success, sets the cart discount to the resolved amount. An unsupported
// code returns an error and leaves the cart unchanged.
func (s *Store) ApplyDiscount(ctx context.Context, code string) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	amount, err := s.discounts.Resolve(ctx, code, s.cart.Clone())
	if err != nil {
		return s.cart.Clone(), err
	}

	s.cart.Discount = amount
	cartMutationsTotal.WithLabelValues("apply_discount").Inc()
	return s.commit(ctx), nil
}

// SelectShippingMethod stores the zone/method selection and, when the method
// carries a fixed cost, applies it immediately. Methods without a fixed cost
// keep the previous shipping value until the rate resolver feeds a cost back
// through SetShippingCost.
func (s *Store) SelectShippingMethod(ctx context.Context, sel domain.SelectedShippingMethod) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shipping = &sel
	if cost, ok := sel.Method.FixedCost(); ok {
		s.cart.Shipping = cost
	}

	if err := s.repo.SaveShippingMethod(ctx, s.cart.ID, &sel); err != nil {
		s.logger.WarnContext(ctx, "failed to persist shipping method",
			slog.String("cart_id", s.cart.ID),
			slog.String("error", err.Error()),
		)
	}

	cartMutationsTotal.WithLabelValues("select_shipping_method").Inc()
	return s.commit(ctx)
}

// SetShippingCost applies a remotely resolved shipping cost and recalculates.
// Non-positive costs are ignored so a failed resolution can never zero out a
// previously resolved rate.
func (s *Store) SetShippingCost(ctx context.Context, cost decimal.Decimal) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cost.IsPositive() {
		s.cart.Shipping = cost
	}

	cartMutationsTotal.WithLabelValues("set_shipping_cost").Inc()
	return s.commit(ctx)
}

// commit recomputes derived totals, persists the snapshot, publishes the
// change, and notifies observers. Callers must hold s.mu.
func (s *Store) commit(ctx context.Context) domain.Cart {
	domain.Recalculate(s.cart)
	s.cart.UpdatedAt = time.Now().UTC()

	if err := s.repo.SaveCart(ctx, s.cart); err != nil {
		s.logger.WarnContext(ctx, "failed to persist cart, in-memory state remains authoritative",
			slog.String("cart_id", s.cart.ID),
			slog.String("error", err.Error()),
		)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishCartUpdated(ctx, s.cart); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
				slog.String("cart_id", s.cart.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	snapshot := s.cart.Clone()
	s.notify(snapshot)
	return snapshot
}

// notify fans the snapshot out to subscribers without blocking. Callers must
// hold s.mu.
func (s *Store) notify(snapshot domain.Cart) {
	for _, ch := range s.subs {
		select {
		case ch <- snapshot:
		default:
		}
	}
}
