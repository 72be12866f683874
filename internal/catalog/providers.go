package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cgdmohamed/drznmobile-sub000/internal/domain"
	"github.com/cgdmohamed/drznmobile-sub000/pkg/pagination"
)

// CatalogAPI is the slice of the backend client the providers need.
type CatalogAPI interface {
	Products(ctx context.Context, params pagination.Params, categoryID int64) ([]domain.Product, error)
	RandomProducts(ctx context.Context, n int) ([]domain.Product, error)
}

// CategoryProvider pulls products from one catalog category.
type CategoryProvider struct {
	api        CatalogAPI
	categoryID int64
}

// NewCategoryProvider creates a provider over the given category. A category
// ID of 0 lists the whole catalog.
func NewCategoryProvider(api CatalogAPI, categoryID int64) *CategoryProvider {
	return &CategoryProvider{api: api, categoryID: categoryID}
}

func (p *CategoryProvider) Name() string { return "category" }

func (p *CategoryProvider) Provide(ctx context.Context, need int) ([]domain.Product, error) {
	params := pagination.DefaultParams()
	if need > params.PerPage {
		params.PerPage = need
	}
	return p.api.Products(ctx, params, p.categoryID)
}

// RandomProvider pulls a randomized product sample from the whole catalog.
type RandomProvider struct {
	api CatalogAPI
}

// NewRandomProvider creates a provider over randomized catalog picks.
func NewRandomProvider(api CatalogAPI) *RandomProvider {
	return &RandomProvider{api: api}
}

func (p *RandomProvider) Name() string { return "random" }

func (p *RandomProvider) Provide(ctx context.Context, need int) ([]domain.Product, error) {
	return p.api.RandomProducts(ctx, need)
}

// DemoProvider serves built-in placeholder products. It is the terminal
// provider in the feed chain: the UI always has something to render even
// with the catalog backend down.
type DemoProvider struct {
	products []domain.Product
}

// NewDemoProvider creates a provider over the built-in demo products.
func NewDemoProvider() *DemoProvider {
	return &DemoProvider{products: demoProducts()}
}

func (p *DemoProvider) Name() string { return "demo" }

func (p *DemoProvider) Provide(_ context.Context, need int) ([]domain.Product, error) {
	if need >= len(p.products) {
		return p.products, nil
	}
	return p.products[:need], nil
}

// demoProducts returns the static placeholder catalog. Negative IDs keep demo
// entries from colliding with real catalog products when chains mix sources.
func demoProducts() []domain.Product {
	price := func(s string) decimal.Decimal {
		d, _ := decimal.NewFromString(s)
		return d
	}

	return []domain.Product{
		{ID: -1, Name: "Arabica Coffee Beans 500g", SKU: "DEMO-COFFEE", RegularPrice: price("45.00")},
		{ID: -2, Name: "Ceramic Dallah Pot", SKU: "DEMO-DALLAH", RegularPrice: price("120.00"), SalePrice: price("95.00"), OnSale: true},
		{ID: -3, Name: "Date Gift Box", SKU: "DEMO-DATES", RegularPrice: price("60.00")},
		{ID: -4, Name: "Oud Incense Set", SKU: "DEMO-OUD", RegularPrice: price("85.00")},
		{ID: -5, Name: "Glass Tea Cups (6)", SKU: "DEMO-CUPS", RegularPrice: price("35.00"), SalePrice: price("28.00"), OnSale: true},
		{ID: -6, Name: "Woven Serving Tray", SKU: "DEMO-TRAY", RegularPrice: price("55.00")},
	}
}
