package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id int64, price string) Product {
	return Product{
		ID:           id,
		Name:         "test product",
		RegularPrice: decimal.RequireFromString(price),
	}
}

func saleProduct(id int64, regular, sale string) Product {
	return Product{
		ID:           id,
		Name:         "sale product",
		RegularPrice: decimal.RequireFromString(regular),
		SalePrice:    decimal.RequireFromString(sale),
		OnSale:       true,
	}
}

// ============================================================================
// Recalculate Tests
// ============================================================================

func TestRecalculate_SingleItem(t *testing.T) {
	c := NewCart("cart-1")
	c.Items = []LineItem{{Product: product(1, "100"), Quantity: 1}}

	Recalculate(c)

	assert.Equal(t, 1, c.ItemCount)
	assert.Equal(t, "100", c.Subtotal.String())
	assert.Equal(t, "10", c.Shipping.String())
	assert.Equal(t, "15", c.VAT.String())
	assert.Equal(t, "125", c.Total.String())
}

func TestRecalculate_MergedQuantities(t *testing.T) {
	// Re-adding the same product bumps quantity; totals follow.
	c := NewCart("cart-1")
	c.Items = []LineItem{{Product: product(1, "100"), Quantity: 3}}

	Recalculate(c)

	assert.Equal(t, 3, c.ItemCount)
	assert.Equal(t, "300", c.Subtotal.String())
	assert.Equal(t, "10", c.Shipping.String())
	assert.Equal(t, "45", c.VAT.String())
	assert.Equal(t, "355", c.Total.String())
}

func TestRecalculate_DiscountReducesTaxable(t *testing.T) {
	// VAT applies to the discounted subtotal, not the raw one.
	c := NewCart("cart-1")
	c.Items = []LineItem{{Product: product(1, "100"), Quantity: 3}}
	c.Discount = decimal.RequireFromString("30")

	Recalculate(c)

	assert.Equal(t, "300", c.Subtotal.String())
	assert.Equal(t, "30", c.Discount.String())
	assert.Equal(t, "40.5", c.VAT.String())
	assert.Equal(t, "320.5", c.Total.String())
}

func TestRecalculate_DiscountClampedToSubtotal(t *testing.T) {
	c := NewCart("cart-1")
	c.Items = []LineItem{{Product: product(1, "20"), Quantity: 1}}
	c.Discount = decimal.RequireFromString("50")

	Recalculate(c)

	assert.Equal(t, "50", c.Discount.String(), "requested amount preserved")
	assert.True(t, c.VAT.IsZero())
	assert.Equal(t, "10", c.Total.String(), "only shipping remains")
}

func TestRecalculate_ClampedDiscountRecoversWhenSubtotalGrows(t *testing.T) {
	// A discount larger than today's subtotal is not eaten; it applies in
	// full once more items raise the subtotal past it.
	c := NewCart("cart-1")
	c.Items = []LineItem{{Product: product(1, "20"), Quantity: 1}}
	c.Discount = decimal.RequireFromString("50")
	Recalculate(c)
	require.Equal(t, "10", c.Total.String())

	c.Items = append(c.Items, LineItem{Product: product(2, "80"), Quantity: 1})
	Recalculate(c)

	assert.Equal(t, "100", c.Subtotal.String())
	assert.Equal(t, "50", c.Discount.String())
	assert.Equal(t, "7.5", c.VAT.String())
	assert.Equal(t, "67.5", c.Total.String())
}

func TestRecalculate_EmptyCart(t *testing.T) {
	c := NewCart("cart-1")

	Recalculate(c)

	assert.Equal(t, 0, c.ItemCount)
	assert.True(t, c.Subtotal.IsZero())
	assert.True(t, c.Shipping.IsZero(), "empty cart ships free")
	assert.True(t, c.VAT.IsZero())
	assert.True(t, c.Total.IsZero())
}

func TestRecalculate_EmptiedCartDropsShipping(t *testing.T) {
	// A cart that had items keeps its resolved shipping cost until the last
	// item leaves; then shipping goes back to zero.
	c := NewCart("cart-1")
	c.Items = []LineItem{{Product: product(1, "50"), Quantity: 1}}
	Recalculate(c)
	require.Equal(t, "10", c.Shipping.String())

	c.Items = nil
	Recalculate(c)

	assert.True(t, c.Shipping.IsZero())
	assert.True(t, c.Total.IsZero())
}

func TestRecalculate_ResolvedShippingKept(t *testing.T) {
	c := NewCart("cart-1")
	c.Items = []LineItem{{Product: product(1, "100"), Quantity: 1}}
	c.Shipping = decimal.RequireFromString("25.5")

	Recalculate(c)

	assert.Equal(t, "25.5", c.Shipping.String())
	assert.Equal(t, "140.5", c.Total.String())
}

func TestRecalculate_ZeroShippingFallsBackToDefault(t *testing.T) {
	c := NewCart("cart-1")
	c.Items = []LineItem{{Product: product(1, "100"), Quantity: 1}}
	c.Shipping = decimal.Zero

	Recalculate(c)

	assert.Equal(t, DefaultShippingFee.String(), c.Shipping.String())
}

func TestRecalculate_SalePriceUsed(t *testing.T) {
	c := NewCart("cart-1")
	c.Items = []LineItem{{Product: saleProduct(1, "100", "80"), Quantity: 2}}

	Recalculate(c)

	assert.Equal(t, "160", c.Subtotal.String())
}

func TestRecalculate_FractionalPrices(t *testing.T) {
	c := NewCart("cart-1")
	c.Items = []LineItem{
		{Product: product(1, "19.99"), Quantity: 2},
		{Product: product(2, "0.5"), Quantity: 1},
	}

	Recalculate(c)

	assert.Equal(t, 3, c.ItemCount)
	assert.Equal(t, "40.48", c.Subtotal.String())
	// 40.48 * 0.15 = 6.072
	assert.Equal(t, "6.072", c.VAT.String())
	assert.Equal(t, "56.552", c.Total.String())
}

func TestRecalculate_Idempotent(t *testing.T) {
	c := NewCart("cart-1")
	c.Items = []LineItem{
		{Product: product(1, "19.99"), Quantity: 2},
		{Product: saleProduct(2, "50", "37.25"), Quantity: 3},
	}
	c.Discount = decimal.RequireFromString("12.34")

	Recalculate(c)
	first := []string{
		c.Subtotal.String(), c.Discount.String(), c.Shipping.String(),
		c.VAT.String(), c.Total.String(),
	}

	Recalculate(c)
	second := []string{
		c.Subtotal.String(), c.Discount.String(), c.Shipping.String(),
		c.VAT.String(), c.Total.String(),
	}

	assert.Equal(t, first, second)
}
