// Package woocommerce is a thin client for the WooCommerce-shaped REST
// backend: product catalog, shipping zones, and per-zone rate methods. The
// backend is an opaque external collaborator; this package only shapes
// requests and decodes responses.
package woocommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/cgdmohamed/drznmobile-sub000/internal/domain"
	"github.com/cgdmohamed/drznmobile-sub000/pkg/httpclient"
	"github.com/cgdmohamed/drznmobile-sub000/pkg/pagination"
)

// HTTPDoer executes HTTP requests. Both httpclient.Client and
// httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client talks to the WooCommerce-shaped REST API using key/secret query
// authentication.
type Client struct {
	http           HTTPDoer
	baseURL        string
	consumerKey    string
	consumerSecret string
}

// NewClient creates a catalog/shipping API client. baseURL is the API root,
// e.g. "https://shop.example.com/wp-json/wc/v3".
func NewClient(doer HTTPDoer, baseURL, consumerKey, consumerSecret string) *Client {
	return &Client{
		http:           doer,
		baseURL:        baseURL,
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
	}
}

// productPayload is the wire shape of a catalog product. Prices arrive as
// decimal strings.
type productPayload struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	RegularPrice string `json:"regular_price"`
	SalePrice    string `json:"sale_price"`
	OnSale       bool   `json:"on_sale"`
	Images       []struct {
		Src string `json:"src"`
	} `json:"images"`
	Categories []struct {
		ID int64 `json:"id"`
	} `json:"categories"`
}

func (p productPayload) toDomain() domain.Product {
	product := domain.Product{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		RegularPrice: parseAmount(p.RegularPrice),
		SalePrice:    parseAmount(p.SalePrice),
		OnSale:       p.OnSale,
	}
	if len(p.Images) > 0 {
		product.ImageURL = p.Images[0].Src
	}
	for _, c := range p.Categories {
		product.CategoryIDs = append(product.CategoryIDs, c.ID)
	}
	return product
}

// parseAmount converts a wire price string to a decimal, treating empty or
// malformed values as zero. WooCommerce leaves sale_price empty when a
// product is not discounted.
func parseAmount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Products lists catalog products, optionally filtered by category.
func (c *Client) Products(ctx context.Context, params pagination.Params, categoryID int64) ([]domain.Product, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(params.Page))
	q.Set("per_page", strconv.Itoa(params.PerPage))
	if categoryID > 0 {
		q.Set("category", strconv.FormatInt(categoryID, 10))
	}
	return c.fetchProducts(ctx, q)
}

// RandomProducts fetches up to n products in randomized order.
func (c *Client) RandomProducts(ctx context.Context, n int) ([]domain.Product, error) {
	q := url.Values{}
	q.Set("orderby", "rand")
	q.Set("per_page", strconv.Itoa(n))
	return c.fetchProducts(ctx, q)
}

// SearchProducts runs a full-text catalog search.
func (c *Client) SearchProducts(ctx context.Context, query string, params pagination.Params) ([]domain.Product, error) {
	q := url.Values{}
	q.Set("search", query)
	q.Set("page", strconv.Itoa(params.Page))
	q.Set("per_page", strconv.Itoa(params.PerPage))
	return c.fetchProducts(ctx, q)
}

func (c *Client) fetchProducts(ctx context.Context, q url.Values) ([]domain.Product, error) {
	var payload []productPayload
	if err := c.get(ctx, "/products", q, &payload); err != nil {
		return nil, err
	}

	products := make([]domain.Product, len(payload))
	for i, p := range payload {
		products[i] = p.toDomain()
	}
	return products, nil
}

// ShippingZones lists all shipping zones.
func (c *Client) ShippingZones(ctx context.Context) ([]domain.ShippingZone, error) {
	var zones []domain.ShippingZone
	if err := c.get(ctx, "/shipping/zones", nil, &zones); err != nil {
		return nil, err
	}
	return zones, nil
}

// ZoneMethods lists the rate methods configured for a zone.
func (c *Client) ZoneMethods(ctx context.Context, zoneID int64) ([]domain.ShippingMethod, error) {
	var methods []domain.ShippingMethod
	path := fmt.Sprintf("/shipping/zones/%d/methods", zoneID)
	if err := c.get(ctx, path, nil, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

// MatchZone resolves the shipping zone for a location. Zone 0 is the backend
// default when nothing matches.
func (c *Client) MatchZone(ctx context.Context, country, state, postcode string) (int64, error) {
	q := url.Values{}
	if country != "" {
		q.Set("country", country)
	}
	if state != "" {
		q.Set("state", state)
	}
	if postcode != "" {
		q.Set("postcode", postcode)
	}

	var zone struct {
		ID int64 `json:"id"`
	}
	if err := c.get(ctx, "/shipping/zones/match", q, &zone); err != nil {
		return 0, err
	}
	return zone.ID, nil
}

// get issues an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	if q == nil {
		q = url.Values{}
	}
	q.Set("consumer_key", c.consumerKey)
	q.Set("consumer_secret", c.consumerSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("catalog backend: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return httpclient.ParseResponseError(resp, "catalog backend")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}
