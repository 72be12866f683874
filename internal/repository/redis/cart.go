package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cgdmohamed/drznmobile-sub000/internal/domain"
	apperrors "github.com/cgdmohamed/drznmobile-sub000/pkg/errors"
)

// Logical key prefixes for the two persisted snapshots.
const (
	cartKeyPrefix     = "shopping_cart:"
	shippingKeyPrefix = "selected_shipping_method:"
)

// CartRepository implements repository.CartRepository using Redis.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a new Redis-backed cart repository.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

// LoadCart retrieves a cart snapshot by cart ID.
func (r *CartRepository) LoadCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, cartKeyPrefix+cartID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("cart", cartID)
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}

	return &cart, nil
}

// SaveCart persists the full cart snapshot with the configured TTL.
func (r *CartRepository) SaveCart(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, cartKeyPrefix+cart.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}

	return nil
}

// DeleteCart removes the persisted cart snapshot.
func (r *CartRepository) DeleteCart(ctx context.Context, cartID string) error {
	if err := r.client.Del(ctx, cartKeyPrefix+cartID).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}
	return nil
}

// LoadShippingMethod retrieves the persisted shipping method selection.
func (r *CartRepository) LoadShippingMethod(ctx context.Context, cartID string) (*domain.SelectedShippingMethod, error) {
	data, err := r.client.Get(ctx, shippingKeyPrefix+cartID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("shipping method", cartID)
		}
		return nil, fmt.Errorf("redis get shipping method: %w", err)
	}

	var method domain.SelectedShippingMethod
	if err := json.Unmarshal(data, &method); err != nil {
		return nil, fmt.Errorf("unmarshal shipping method: %w", err)
	}

	return &method, nil
}

// SaveShippingMethod persists the shipping method selection with the configured TTL.
func (r *CartRepository) SaveShippingMethod(ctx context.Context, cartID string, method *domain.SelectedShippingMethod) error {
	data, err := json.Marshal(method)
	if err != nil {
		return fmt.Errorf("marshal shipping method: %w", err)
	}

	if err := r.client.Set(ctx, shippingKeyPrefix+cartID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set shipping method: %w", err)
	}

	return nil
}

// DeleteShippingMethod removes the persisted shipping method selection.
func (r *CartRepository) DeleteShippingMethod(ctx context.Context, cartID string) error {
	if err := r.client.Del(ctx, shippingKeyPrefix+cartID).Err(); err != nil {
		return fmt.Errorf("redis del shipping method: %w", err)
	}
	return nil
}
