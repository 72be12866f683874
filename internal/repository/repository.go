package repository

import (
	"context"

	"github.com/cgdmohamed/drznmobile-sub000/internal/domain"
)

// CartRepository persists cart snapshots and the shopper's shipping method
// selection. Implementations store the two as separate logical keys so either
// can be restored independently.
type CartRepository interface {
	// LoadCart retrieves the persisted cart snapshot for the given cart ID.
	LoadCart(ctx context.Context, cartID string) (*domain.Cart, error)

	// SaveCart persists the full cart snapshot, overwriting any previous one.
	SaveCart(ctx context.Context, cart *domain.Cart) error

	// DeleteCart removes the persisted cart snapshot.
	DeleteCart(ctx context.Context, cartID string) error

	// LoadShippingMethod retrieves the persisted shipping method selection.
	LoadShippingMethod(ctx context.Context, cartID string) (*domain.SelectedShippingMethod, error)

	// SaveShippingMethod persists the shipping method selection.
	SaveShippingMethod(ctx context.Context, cartID string, method *domain.SelectedShippingMethod) error

	// DeleteShippingMethod removes the persisted shipping method selection.
	DeleteShippingMethod(ctx context.Context, cartID string) error
}
