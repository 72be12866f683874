// Package catalog assembles product listings for the storefront feed. The
// feed guarantees a minimum number of products by walking an ordered chain of
// providers until enough results accumulate; catalog outages degrade to
// built-in demo data instead of an empty page.
package catalog

import (
	"context"
	"log/slog"

	"github.com/cgdmohamed/drznmobile-sub000/internal/domain"
)

// Provider yields up to need products. Providers are tried in order; a
// failing provider is skipped, not retried.
type Provider interface {
	Name() string
	Provide(ctx context.Context, need int) ([]domain.Product, error)
}

// Feed fills product listings from an ordered provider chain.
type Feed struct {
	providers []Provider
	logger    *slog.Logger
}

// NewFeed creates a feed over the given providers, tried in argument order.
func NewFeed(logger *slog.Logger, providers ...Provider) *Feed {
	return &Feed{
		providers: providers,
		logger:    logger,
	}
}

// EnsureMinimum returns at least min products whenever any provider in the
// chain can supply them. Results are deduplicated by product ID across
// providers and provider errors are absorbed. The final provider in a
// well-formed chain is a static demo source, so the feed only comes up short
// when min exceeds the whole chain's supply.
func (f *Feed) EnsureMinimum(ctx context.Context, min int) []domain.Product {
	var products []domain.Product
	seen := make(map[int64]struct{})

	for _, p := range f.providers {
		if len(products) >= min {
			break
		}

		batch, err := p.Provide(ctx, min-len(products))
		if err != nil {
			f.logger.WarnContext(ctx, "catalog provider failed, trying next",
				slog.String("provider", p.Name()),
				slog.String("error", err.Error()),
			)
			continue
		}

		for _, product := range batch {
			if _, ok := seen[product.ID]; ok {
				continue
			}
			seen[product.ID] = struct{}{}
			products = append(products, product)
		}
	}

	return products
}
