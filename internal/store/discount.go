package store

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cgdmohamed/drznmobile-sub000/internal/domain"
	apperrors "github.com/cgdmohamed/drznmobile-sub000/pkg/errors"
)

// DiscountPolicy maps a promo code to a discount amount for the given cart.
// The validation rules are an external concern; the store only applies the
// resolved amount.
type DiscountPolicy interface {
	Resolve(ctx context.Context, code string, cart domain.Cart) (decimal.Decimal, error)
}

// FlatPercentPolicy accepts a single code and resolves it to a percentage of
// the cart subtotal. This is the placeholder policy shipped with the demo
// storefront, not a real promotion catalog.
type FlatPercentPolicy struct {
	Code    string
	Percent decimal.Decimal
}

// NewDemoDiscountPolicy returns the demo policy: code "DISCOUNT10" grants 10%
// of the subtotal.
func NewDemoDiscountPolicy() FlatPercentPolicy {
	return FlatPercentPolicy{
		Code:    "DISCOUNT10",
		Percent: decimal.New(10, -2),
	}
}

// Resolve implements DiscountPolicy.
func (p FlatPercentPolicy) Resolve(_ context.Context, code string, cart domain.Cart) (decimal.Decimal, error) {
	if code != p.Code {
		return decimal.Zero, apperrors.InvalidInput("invalid promo code")
	}
	return cart.Subtotal.Mul(p.Percent), nil
}
