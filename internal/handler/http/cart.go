package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/cgdmohamed/drznmobile-sub000/internal/checkout"
	"github.com/cgdmohamed/drznmobile-sub000/internal/domain"
	"github.com/cgdmohamed/drznmobile-sub000/internal/shipping"
	"github.com/cgdmohamed/drznmobile-sub000/internal/store"
	apperrors "github.com/cgdmohamed/drznmobile-sub000/pkg/errors"
	"github.com/cgdmohamed/drznmobile-sub000/pkg/httputil"
	"github.com/cgdmohamed/drznmobile-sub000/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	stores    *store.Manager
	resolver  *shipping.Resolver
	checkouts *checkout.Manager
	logger    *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(stores *store.Manager, resolver *shipping.Resolver, checkouts *checkout.Manager, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		stores:    stores,
		resolver:  resolver,
		checkouts: checkouts,
		logger:    logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding an item to the cart.
// Prices are decimal strings as served by the catalog.
type AddItemRequest struct {
	ProductID    int64  `json:"product_id" validate:"required"`
	Name         string `json:"name" validate:"required,min=1,max=500"`
	SKU          string `json:"sku"`
	RegularPrice string `json:"regular_price" validate:"required"`
	SalePrice    string `json:"sale_price"`
	OnSale       bool   `json:"on_sale"`
	ImageURL     string `json:"image_url"`
	Quantity     int    `json:"quantity" validate:"gte=0"`
}

// UpdateQuantityRequest is the JSON request body for updating an item's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// ApplyDiscountRequest is the JSON request body for applying a promo code.
type ApplyDiscountRequest struct {
	Code string `json:"code" validate:"required"`
}

// SelectShippingMethodRequest is the JSON request body for choosing a
// shipping method.
type SelectShippingMethodRequest struct {
	ZoneID   int64                 `json:"zone_id" validate:"required"`
	MethodID int64                 `json:"method_id" validate:"required"`
	Method   domain.ShippingMethod `json:"method"`
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("cart identity required"), h.logger)
		return
	}

	cart := h.stores.Get(r.Context(), cartID).Snapshot()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("cart identity required"), h.logger)
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	regular, err := decimal.NewFromString(req.RegularPrice)
	if err != nil || regular.IsNegative() {
		httputil.WriteError(w, r, apperrors.InvalidInput("regular_price must be a non-negative decimal"), h.logger)
		return
	}
	sale := decimal.Zero
	if req.SalePrice != "" {
		sale, err = decimal.NewFromString(req.SalePrice)
		if err != nil || sale.IsNegative() {
			httputil.WriteError(w, r, apperrors.InvalidInput("sale_price must be a non-negative decimal"), h.logger)
			return
		}
	}

	product := domain.Product{
		ID:           req.ProductID,
		Name:         req.Name,
		SKU:          req.SKU,
		RegularPrice: regular,
		SalePrice:    sale,
		OnSale:       req.OnSale,
		ImageURL:     req.ImageURL,
	}

	cart := h.stores.Get(r.Context(), cartID).AddItem(r.Context(), product, req.Quantity)

	h.logger.InfoContext(r.Context(), "item added to cart",
		slog.String("cart_id", cartID),
		slog.Int64("product_id", req.ProductID),
		slog.Int("quantity", req.Quantity),
	)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// UpdateQuantity handles PUT /api/v1/cart/items/{productID}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("cart identity required"), h.logger)
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("productID must be an integer"), h.logger)
		return
	}

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart := h.stores.Get(r.Context(), cartID).UpdateQuantity(r.Context(), productID, req.Quantity)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("cart identity required"), h.logger)
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("productID must be an integer"), h.logger)
		return
	}

	cart := h.stores.Get(r.Context(), cartID).RemoveItem(r.Context(), productID)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("cart identity required"), h.logger)
		return
	}

	cart := h.stores.Get(r.Context(), cartID).Clear(r.Context())
	h.checkouts.Reset(cartID)

	h.logger.InfoContext(r.Context(), "cart cleared", slog.String("cart_id", cartID))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// ApplyDiscount handles POST /api/v1/cart/discount
func (h *CartHandler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("cart identity required"), h.logger)
		return
	}

	var req ApplyDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.stores.Get(r.Context(), cartID).ApplyDiscount(r.Context(), req.Code)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.logger.InfoContext(r.Context(), "discount applied",
		slog.String("cart_id", cartID),
		slog.String("code", req.Code),
	)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// SelectShippingMethod handles PUT /api/v1/cart/shipping-method
func (h *CartHandler) SelectShippingMethod(w http.ResponseWriter, r *http.Request) {
	cartID, ok := cartIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("cart identity required"), h.logger)
		return
	}

	var req SelectShippingMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	sel := domain.SelectedShippingMethod{
		ZoneID:   req.ZoneID,
		MethodID: req.MethodID,
		Method:   req.Method,
	}

	cartStore := h.stores.Get(r.Context(), cartID)
	cart := cartStore.SelectShippingMethod(r.Context(), sel)

	// Methods without a fixed cost resolve remotely in the background; the
	// response carries the cart with the previous shipping value for now.
	if _, fixed := sel.Method.FixedCost(); !fixed {
		h.resolver.Resolve(r.Context(), cartStore, sel, cart.Items)
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}
