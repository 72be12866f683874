// Package checkout implements the linear checkout flow: shipping, payment,
// confirmation. Step state lives in memory only; order placement and payment
// processing happen elsewhere once confirmation is reached.
package checkout

import (
	"strings"
	"sync"

	"github.com/cgdmohamed/drznmobile-sub000/internal/domain"
	apperrors "github.com/cgdmohamed/drznmobile-sub000/pkg/errors"
)

// minPhoneDigits is the shortest phone number accepted for STC Pay.
const minPhoneDigits = 9

// State holds the step-local inputs collected from the shopper. The
// controller validates these when advancing; it never validates on entry.
type State struct {
	// Shipping step: either a saved address is selected or the form is
	// filled in completely.
	SelectedAddressID string
	Address           domain.AddressForm

	// Payment step.
	PaymentMethod string
	Card          domain.CardDetails
	STCPhone      string
}

// Controller is the state machine over the checkout steps. Transitions move
// forward only through Next (validation-gated) and backward through Previous
// or GoTo.
type Controller struct {
	mu    sync.Mutex
	step  domain.CheckoutStep
	state State
}

// NewController creates a controller positioned at the shipping step.
func NewController() *Controller {
	return &Controller{step: domain.StepShipping}
}

// Step returns the current checkout step.
func (c *Controller) Step() domain.CheckoutStep {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// State returns a copy of the collected step inputs.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Update merges the given inputs into the controller state. Zero-valued
// fields leave the existing values untouched, so partial form submissions
// accumulate.
func (c *Controller) Update(in State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if in.SelectedAddressID != "" {
		c.state.SelectedAddressID = in.SelectedAddressID
	}
	if in.Address != (domain.AddressForm{}) {
		c.state.Address = in.Address
	}
	if in.PaymentMethod != "" {
		c.state.PaymentMethod = in.PaymentMethod
	}
	if in.Card != (domain.CardDetails{}) {
		c.state.Card = in.Card
	}
	if in.STCPhone != "" {
		c.state.STCPhone = in.STCPhone
	}
}

// Next validates the current step and advances one step on success. On
// validation failure the step is unchanged and the error describes what is
// missing. Calling Next at confirmation is rejected; the flow has no further
// step to advance to.
func (c *Controller) Next() (domain.CheckoutStep, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.step {
	case domain.StepShipping:
		if err := c.validateShipping(); err != nil {
			return c.step, err
		}
		c.step = domain.StepPayment
	case domain.StepPayment:
		if err := c.validatePayment(); err != nil {
			return c.step, err
		}
		c.step = domain.StepConfirmation
	default:
		return c.step, apperrors.InvalidInput("checkout is already at the confirmation step")
	}

	return c.step, nil
}

// Previous moves one step back. It is always permitted; at the shipping step
// it is a no-op.
func (c *Controller) Previous() domain.CheckoutStep {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.step {
	case domain.StepPayment:
		c.step = domain.StepShipping
	case domain.StepConfirmation:
		c.step = domain.StepPayment
	}
	return c.step
}

// GoTo jumps to an earlier step. Forward jumps are rejected; skipping
// validation is never allowed.
func (c *Controller) GoTo(step domain.CheckoutStep) (domain.CheckoutStep, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !step.Valid() {
		return c.step, apperrors.InvalidInput("unknown checkout step")
	}
	if step.Index() >= c.step.Index() {
		return c.step, apperrors.InvalidInput("cannot skip forward in the checkout flow")
	}
	c.step = step
	return c.step, nil
}

// validateShipping requires either a selected saved address or a complete
// address form. Callers must hold c.mu.
func (c *Controller) validateShipping() error {
	if c.state.SelectedAddressID != "" {
		return nil
	}
	if c.state.Address.Complete() {
		return nil
	}
	return apperrors.InvalidInput("a saved address or a complete shipping address is required")
}

// validatePayment requires a payment method and, depending on the method,
// complete card details or a valid STC Pay phone number. Callers must hold c.mu.
func (c *Controller) validatePayment() error {
	method := c.state.PaymentMethod
	if method == "" {
		return apperrors.InvalidInput("a payment method is required")
	}
	if !domain.ValidPaymentMethod(method) {
		return apperrors.InvalidInput("unsupported payment method")
	}

	switch method {
	case domain.PaymentCreditCard:
		if !c.state.Card.Complete() {
			return apperrors.InvalidInput("complete card details are required")
		}
	case domain.PaymentSTCPay:
		if len(strings.TrimSpace(c.state.STCPhone)) < minPhoneDigits {
			return apperrors.InvalidInput("a valid phone number is required for STC Pay")
		}
	}
	return nil
}

// Manager hands out one controller per cart. Checkout step state is
// deliberately process-local: an interrupted checkout restarts at shipping.
type Manager struct {
	mu          sync.Mutex
	controllers map[string]*Controller
}

// NewManager creates a checkout session manager.
func NewManager() *Manager {
	return &Manager{controllers: make(map[string]*Controller)}
}

// Get returns the controller for the given cart ID, creating one at the
// shipping step on first access.
func (m *Manager) Get(cartID string) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.controllers[cartID]; ok {
		return c
	}
	c := NewController()
	m.controllers[cartID] = c
	return c
}

// Reset discards the controller for the given cart ID, if any. Called when
// the cart is cleared so a fresh checkout starts at shipping.
func (m *Manager) Reset(cartID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.controllers, cartID)
}
