package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cgdmohamed/drznmobile-sub000/internal/catalog"
	"github.com/cgdmohamed/drznmobile-sub000/internal/domain"
	apperrors "github.com/cgdmohamed/drznmobile-sub000/pkg/errors"
	"github.com/cgdmohamed/drznmobile-sub000/pkg/httputil"
	"github.com/cgdmohamed/drznmobile-sub000/pkg/pagination"
)

// ShippingZoneAPI lists shipping zones and their methods from the upstream
// store.
type ShippingZoneAPI interface {
	ShippingZones(ctx context.Context) ([]domain.ShippingZone, error)
	ZoneMethods(ctx context.Context, zoneID int64) ([]domain.ShippingMethod, error)
}

// CatalogHandler serves the product feed and shipping zone lookups.
type CatalogHandler struct {
	feed        *catalog.Feed
	zones       ShippingZoneAPI
	minProducts int
	logger      *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(feed *catalog.Feed, zones ShippingZoneAPI, minProducts int, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		feed:        feed,
		zones:       zones,
		minProducts: minProducts,
		logger:      logger,
	}
}

// ListProducts handles GET /api/v1/products
//
// The feed is padded through the provider chain so the response never carries
// fewer than the configured minimum when upstream returns a short page.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	min := h.minProducts
	if params.PerPage > min {
		min = params.PerPage
	}

	products := h.feed.EnsureMinimum(r.Context(), min)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: pagination.NewResult(products, len(products), params),
	})
}

// ListShippingZones handles GET /api/v1/shipping/zones
func (h *CatalogHandler) ListShippingZones(w http.ResponseWriter, r *http.Request) {
	zones, err := h.zones.ShippingZones(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: zones})
}

// ListZoneMethods handles GET /api/v1/shipping/zones/{zoneID}/methods
func (h *CatalogHandler) ListZoneMethods(w http.ResponseWriter, r *http.Request) {
	zoneID, err := strconv.ParseInt(chi.URLParam(r, "zoneID"), 10, 64)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid zone id"), h.logger)
		return
	}

	methods, err := h.zones.ZoneMethods(r.Context(), zoneID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: methods})
}
