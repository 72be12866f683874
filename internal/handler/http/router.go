package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cgdmohamed/drznmobile-sub000/internal/catalog"
	"github.com/cgdmohamed/drznmobile-sub000/internal/checkout"
	"github.com/cgdmohamed/drznmobile-sub000/internal/shipping"
	"github.com/cgdmohamed/drznmobile-sub000/internal/store"
	"github.com/cgdmohamed/drznmobile-sub000/pkg/health"
	"github.com/cgdmohamed/drznmobile-sub000/pkg/middleware"
)

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Stores        *store.Manager
	Resolver      *shipping.Resolver
	Checkouts     *checkout.Manager
	Feed          *catalog.Feed
	Zones         ShippingZoneAPI
	MinProducts   int
	TokenValidate middleware.TokenValidator
	Health        *health.Handler
	Logger        *slog.Logger
	PprofCIDRs    []string
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	// Health check endpoints
	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, deps.PprofCIDRs, deps.Logger)

	cartHandler := NewCartHandler(deps.Stores, deps.Resolver, deps.Checkouts, deps.Logger)
	checkoutHandler := NewCheckoutHandler(deps.Checkouts, deps.Logger)
	catalogHandler := NewCatalogHandler(deps.Feed, deps.Zones, deps.MinProducts, deps.Logger)

	// Catalog endpoints are public and cacheable.
	r.Group(func(r chi.Router) {
		r.Use(middleware.CacheControl(300))

		r.Get("/api/v1/products", catalogHandler.ListProducts)
		r.Get("/api/v1/shipping/zones", catalogHandler.ListShippingZones)
		r.Get("/api/v1/shipping/zones/{zoneID}/methods", catalogHandler.ListZoneMethods)
	})

	// Cart API endpoints
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(CartIdentity(deps.TokenValidate))

		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)

		r.Post("/items", cartHandler.AddItem)
		r.Put("/items/{productID}", cartHandler.UpdateQuantity)
		r.Delete("/items/{productID}", cartHandler.RemoveItem)

		r.Post("/discount", cartHandler.ApplyDiscount)
		r.Put("/shipping-method", cartHandler.SelectShippingMethod)
	})

	// Checkout flow endpoints
	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(CartIdentity(deps.TokenValidate))

		r.Get("/", checkoutHandler.GetStep)
		r.Post("/next", checkoutHandler.Next)
		r.Post("/previous", checkoutHandler.Previous)
		r.Post("/step", checkoutHandler.GoTo)
	})

	return r
}
