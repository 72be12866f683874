package domain

import "strings"

// CheckoutStep is one stage of the linear purchase flow.
type CheckoutStep string

const (
	StepShipping     CheckoutStep = "shipping"
	StepPayment      CheckoutStep = "payment"
	StepConfirmation CheckoutStep = "confirmation"
)

var stepOrder = []CheckoutStep{StepShipping, StepPayment, StepConfirmation}

// Index returns the position of the step in the flow, or -1 for an unknown step.
func (s CheckoutStep) Index() int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is a known checkout step.
func (s CheckoutStep) Valid() bool {
	return s.Index() >= 0
}

// Steps returns the checkout steps in flow order.
func Steps() []CheckoutStep {
	return []CheckoutStep{StepShipping, StepPayment, StepConfirmation}
}

// Supported payment methods.
const (
	PaymentCreditCard     = "creditCard"
	PaymentApplePay       = "applePay"
	PaymentSTCPay         = "stcPay"
	PaymentCashOnDelivery = "cod"
)

// ValidPaymentMethod reports whether the given method is supported.
func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentCreditCard, PaymentApplePay, PaymentSTCPay, PaymentCashOnDelivery:
		return true
	}
	return false
}

// AddressForm is the shipping address entered at the shipping step when no
// saved address is selected.
type AddressForm struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2,omitempty"`
	District   string `json:"district,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country"`
}

// Complete reports whether every required address field is filled in.
func (a AddressForm) Complete() bool {
	required := []string{a.FullName, a.Phone, a.Address1, a.City, a.State, a.Country}
	for _, field := range required {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

// CardDetails holds the card fields collected at the payment step.
// The values are tokenized by the gateway client; they never leave the
// checkout session.
type CardDetails struct {
	HolderName string `json:"holder_name"`
	Number     string `json:"number"`
	Expiry     string `json:"expiry"`
	CVC        string `json:"cvc"`
}

// Complete reports whether every card field is filled in.
func (c CardDetails) Complete() bool {
	for _, field := range []string{c.HolderName, c.Number, c.Expiry, c.CVC} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}
