package domain

import "github.com/shopspring/decimal"

// Fixed business rates for the storefront.
var (
	// VATRate is the Saudi value-added tax rate applied to the discounted subtotal.
	VATRate = decimal.New(15, -2)

	// DefaultShippingFee is the flat fee charged for a non-empty cart when no
	// shipping cost has been resolved yet.
	DefaultShippingFee = decimal.NewFromInt(10)
)

// Recalculate derives ItemCount, Subtotal, Shipping, VAT and Total from the
// cart's items, requested discount and previously resolved shipping cost. It is pure over those inputs and idempotent: calling it twice with no
// intervening mutation yields identical decimals.
//
// Rules:
//   - subtotal sums each item's effective price times quantity
//   - a discount exceeding the subtotal is clamped to the subtotal in the
//     derivation, so VAT and total never go negative; the requested amount
//     stays in Discount and applies in full once the subtotal grows past it
//   - a resolved shipping cost > 0 is kept; otherwise a non-empty cart gets
//     the flat default fee and an empty cart ships free
//   - vat = (subtotal - discount) * VATRate
//   - total = subtotal - discount + shipping + vat
func Recalculate(c *Cart) {
	var count int
	subtotal := decimal.Zero
	for _, item := range c.Items {
		count += item.Quantity
		line := item.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}

	discount := c.Discount
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	shipping := c.Shipping
	switch {
	case count == 0:
		shipping = decimal.Zero
	case !shipping.IsPositive():
		shipping = DefaultShippingFee
	}

	taxable := subtotal.Sub(discount)
	vat := taxable.Mul(VATRate)

	c.ItemCount = count
	c.Subtotal = subtotal
	c.Shipping = shipping
	c.VAT = vat
	c.Total = taxable.Add(shipping).Add(vat)
}
