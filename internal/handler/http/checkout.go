package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cgdmohamed/drznmobile-sub000/internal/checkout"
	"github.com/cgdmohamed/drznmobile-sub000/internal/domain"
	apperrors "github.com/cgdmohamed/drznmobile-sub000/pkg/errors"
	"github.com/cgdmohamed/drznmobile-sub000/pkg/httputil"
	"github.com/cgdmohamed/drznmobile-sub000/pkg/validator"
)

// CheckoutHandler handles HTTP requests for the checkout flow.
type CheckoutHandler struct {
	checkouts *checkout.Manager
	logger    *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(checkouts *checkout.Manager, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkouts: checkouts,
		logger:    logger,
	}
}

// --- Request/response DTOs ---

// NextStepRequest carries the step-local inputs submitted when advancing.
// All fields are optional; supplied values are merged into the session before
// validation runs.
type NextStepRequest struct {
	AddressID     string              `json:"address_id,omitempty"`
	Address       *domain.AddressForm `json:"address,omitempty"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	Card          *domain.CardDetails `json:"card,omitempty"`
	STCPhone      string              `json:"stc_phone,omitempty"`
}

// GoToStepRequest names the step to jump back to.
type GoToStepRequest struct {
	Step string `json:"step" validate:"required"`
}

// stepResponse is the JSON payload describing the current checkout position.
type stepResponse struct {
	Step  domain.CheckoutStep   `json:"step"`
	Steps []domain.CheckoutStep `json:"steps"`
}

// --- Handlers ---

// GetStep handles GET /api/v1/checkout
func (h *CheckoutHandler) GetStep(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("cart identity required"), h.logger)
		return
	}

	ctrl := h.checkouts.Get(cartID)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: stepResponse{
		Step:  ctrl.Step(),
		Steps: domain.Steps(),
	}})
}

// Next handles POST /api/v1/checkout/next
func (h *CheckoutHandler) Next(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("cart identity required"), h.logger)
		return
	}

	var req NextStepRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
			return
		}
	}

	ctrl := h.checkouts.Get(cartID)

	in := checkout.State{
		SelectedAddressID: req.AddressID,
		PaymentMethod:     req.PaymentMethod,
		STCPhone:          req.STCPhone,
	}
	if req.Address != nil {
		in.Address = *req.Address
	}
	if req.Card != nil {
		in.Card = *req.Card
	}
	ctrl.Update(in)

	step, err := ctrl.Next()
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.logger.InfoContext(r.Context(), "checkout advanced",
		slog.String("cart_id", cartID),
		slog.String("step", string(step)),
	)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: stepResponse{
		Step:  step,
		Steps: domain.Steps(),
	}})
}

// Previous handles POST /api/v1/checkout/previous
func (h *CheckoutHandler) Previous(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("cart identity required"), h.logger)
		return
	}

	step := h.checkouts.Get(cartID).Previous()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: stepResponse{
		Step:  step,
		Steps: domain.Steps(),
	}})
}

// GoTo handles POST /api/v1/checkout/step
func (h *CheckoutHandler) GoTo(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("cart identity required"), h.logger)
		return
	}

	var req GoToStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	step, err := h.checkouts.Get(cartID).GoTo(domain.CheckoutStep(req.Step))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: stepResponse{
		Step:  step,
		Steps: domain.Steps(),
	}})
}
