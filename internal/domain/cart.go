package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the catalog snapshot captured when an item enters the cart.
// Prices are frozen at add-time; a later catalog refresh replaces the whole
// snapshot rather than mutating individual fields.
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	RegularPrice decimal.Decimal `json:"regular_price"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	OnSale       bool            `json:"on_sale"`
	ImageURL     string          `json:"image_url,omitempty"`
	CategoryIDs  []int64         `json:"category_ids,omitempty"`
}

// EffectivePrice returns the sale price when the product is on sale,
// otherwise the regular price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.OnSale {
		return p.SalePrice
	}
	return p.RegularPrice
}

// LineItem is one product entry in the cart with its quantity.
// Line items are unique per product ID; re-adding a product merges quantities.
type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart holds the items a shopper has selected plus derived monetary totals.
// ItemCount, Subtotal, VAT, Shipping and Total are always a pure function of
// Items, Discount and the resolved shipping cost; they are recomputed via
// Recalculate and never mutated independently.
type Cart struct {
	ID        string          `json:"id"`
	Items     []LineItem      `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Shipping  decimal.Decimal `json:"shipping"`
	VAT       decimal.Decimal `json:"vat"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewCart creates an empty cart with all derived amounts at zero.
func NewCart(id string) *Cart {
	now := time.Now().UTC()
	return &Cart{
		ID:        id,
		Items:     []LineItem{},
		Subtotal:  decimal.Zero,
		Discount:  decimal.Zero,
		Shipping:  decimal.Zero,
		VAT:       decimal.Zero,
		Total:     decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FindItemIndex returns the index of the line item for the given product ID,
// or -1 if the product is not in the cart.
func (c *Cart) FindItemIndex(productID int64) int {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the cart contains no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone returns a deep copy of the cart. Snapshots handed to observers must
// not alias the store's internal slice.
func (c *Cart) Clone() Cart {
	cp := *c
	cp.Items = make([]LineItem, len(c.Items))
	copy(cp.Items, c.Items)
	return cp
}
