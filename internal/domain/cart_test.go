package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// ============================================================================
// Product.EffectivePrice Tests
// ============================================================================

func TestEffectivePrice_Regular(t *testing.T) {
	p := product(1, "100")
	assert.Equal(t, "100", p.EffectivePrice().String())
}

func TestEffectivePrice_OnSale(t *testing.T) {
	p := saleProduct(1, "100", "75")
	assert.Equal(t, "75", p.EffectivePrice().String())
}

func TestEffectivePrice_OnSaleFlagOff(t *testing.T) {
	// A stale sale price is ignored once the flag drops.
	p := saleProduct(1, "100", "75")
	p.OnSale = false
	assert.Equal(t, "100", p.EffectivePrice().String())
}

// ============================================================================
// Cart Tests
// ============================================================================

func TestNewCart_ZeroAmounts(t *testing.T) {
	c := NewCart("cart-1")

	assert.Equal(t, "cart-1", c.ID)
	assert.Empty(t, c.Items)
	assert.True(t, c.Subtotal.IsZero())
	assert.True(t, c.Discount.IsZero())
	assert.True(t, c.Shipping.IsZero())
	assert.True(t, c.VAT.IsZero())
	assert.True(t, c.Total.IsZero())
	assert.False(t, c.CreatedAt.IsZero())
}

func TestFindItemIndex_Found(t *testing.T) {
	c := NewCart("cart-1")
	c.Items = []LineItem{
		{Product: product(10, "1"), Quantity: 1},
		{Product: product(20, "2"), Quantity: 1},
	}

	assert.Equal(t, 1, c.FindItemIndex(20))
}

func TestFindItemIndex_NotFound(t *testing.T) {
	c := NewCart("cart-1")
	c.Items = []LineItem{{Product: product(10, "1"), Quantity: 1}}

	assert.Equal(t, -1, c.FindItemIndex(99))
}

func TestIsEmpty(t *testing.T) {
	c := NewCart("cart-1")
	assert.True(t, c.IsEmpty())

	c.Items = append(c.Items, LineItem{Product: product(1, "1"), Quantity: 1})
	assert.False(t, c.IsEmpty())
}

func TestClone_DoesNotAliasItems(t *testing.T) {
	c := NewCart("cart-1")
	c.Items = []LineItem{{Product: product(1, "100"), Quantity: 1}}
	c.Subtotal = decimal.RequireFromString("100")

	cp := c.Clone()
	cp.Items[0].Quantity = 5

	assert.Equal(t, 1, c.Items[0].Quantity)
	assert.Equal(t, "100", cp.Subtotal.String())
}
