package domain

import "github.com/shopspring/decimal"

// ShippingZone is a named rate rule set as exposed by the store backend.
type ShippingZone struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// ShippingMethod describes one rate rule within a zone. Cost is the raw
// backend representation (a decimal string, possibly empty for methods whose
// rate must be calculated remotely).
type ShippingMethod struct {
	ID          int64  `json:"id"`
	InstanceID  int64  `json:"instance_id"`
	Title       string `json:"title"`
	MethodID    string `json:"method_id"`
	MethodTitle string `json:"method_title"`
	Description string `json:"description,omitempty"`
	Cost        string `json:"cost,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// FixedCost parses the method's cost field. The second return value is false
// when the method carries no usable fixed cost and the rate must be resolved
// remotely.
func (m ShippingMethod) FixedCost() (decimal.Decimal, bool) {
	if m.Cost == "" {
		return decimal.Zero, false
	}
	cost, err := decimal.NewFromString(m.Cost)
	if err != nil || !cost.IsPositive() {
		return decimal.Zero, false
	}
	return cost, true
}

// SelectedShippingMethod records the shopper's zone/method choice together
// with the resolved method descriptor. It is persisted alongside the cart and
// cleared when the cart is cleared.
type SelectedShippingMethod struct {
	ZoneID   int64          `json:"zone_id"`
	MethodID int64          `json:"method_id"`
	Method   ShippingMethod `json:"method"`
}
