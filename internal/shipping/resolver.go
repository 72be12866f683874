// Package shipping converts a zone/method selection into a shipping cost and
// feeds it back into the cart store.
package shipping

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/cgdmohamed/drznmobile-sub000/internal/domain"
)

// CostSink receives resolved shipping costs. Implemented by the cart store.
type CostSink interface {
	SetShippingCost(ctx context.Context, cost decimal.Decimal) domain.Cart
}

// RateAPI fetches the rate methods configured for a zone. Implemented by the
// woocommerce client.
type RateAPI interface {
	ZoneMethods(ctx context.Context, zoneID int64) ([]domain.ShippingMethod, error)
}

// Resolver resolves shipping costs. Fixed-cost methods resolve locally and
// synchronously; anything else issues an asynchronous remote calculation.
// Each remote request is tagged with a monotonically increasing sequence
// number, tracked per sink, and a response is discarded unless its sequence
// is still the latest issued for that sink. A slow stale response can never
// overwrite a newer selection, and one cart's request never invalidates
// another cart's in-flight calculation.
type Resolver struct {
	api    RateAPI
	logger *slog.Logger

	mu  sync.Mutex
	seq map[CostSink]uint64
}

// NewResolver creates a shipping rate resolver.
func NewResolver(api RateAPI, logger *slog.Logger) *Resolver {
	return &Resolver{
		api:    api,
		logger: logger,
		seq:    make(map[CostSink]uint64),
	}
}

func (r *Resolver) nextSeq(sink CostSink) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq[sink]++
	return r.seq[sink]
}

func (r *Resolver) isLatest(sink CostSink, seq uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq[sink] == seq
}

// Resolve determines the cost for the given selection and delivers it to the
// sink. With a fixed-cost method the sink is updated before Resolve returns;
// otherwise the remote calculation runs in the background and the previous
// shipping value stays in place until (and unless) it completes as the
// latest outstanding request. A failed calculation leaves the prior value
// untouched.
func (r *Resolver) Resolve(ctx context.Context, sink CostSink, sel domain.SelectedShippingMethod, items []domain.LineItem) {
	if cost, ok := sel.Method.FixedCost(); ok {
		sink.SetShippingCost(ctx, cost)
		return
	}

	seq := r.nextSeq(sink)

	var quantity int
	for _, item := range items {
		quantity += item.Quantity
	}

	// The calculation outlives the triggering request; navigation away does
	// not cancel it.
	bgCtx := context.WithoutCancel(ctx)

	go func() {
		cost, err := r.calculate(bgCtx, sel, quantity)
		if err != nil {
			r.logger.WarnContext(bgCtx, "shipping rate calculation failed, keeping previous value",
				slog.Int64("zone_id", sel.ZoneID),
				slog.Int64("method_id", sel.MethodID),
				slog.String("error", err.Error()),
			)
			return
		}

		if !r.isLatest(sink, seq) {
			r.logger.DebugContext(bgCtx, "discarding stale shipping rate response",
				slog.Int64("zone_id", sel.ZoneID),
				slog.Int64("method_id", sel.MethodID),
				slog.Uint64("seq", seq),
			)
			return
		}

		sink.SetShippingCost(bgCtx, cost)
	}()
}

// calculate fetches the zone's methods and picks the cost of the selected
// one. Methods without a usable cost fall back to the flat default fee, which
// is what the backend charges when no rate rule applies.
func (r *Resolver) calculate(ctx context.Context, sel domain.SelectedShippingMethod, quantity int) (decimal.Decimal, error) {
	methods, err := r.api.ZoneMethods(ctx, sel.ZoneID)
	if err != nil {
		return decimal.Zero, err
	}

	for _, m := range methods {
		if m.ID != sel.MethodID {
			continue
		}
		if cost, ok := m.FixedCost(); ok {
			return cost, nil
		}
		break
	}

	r.logger.DebugContext(ctx, "no fixed rate for method, using default fee",
		slog.Int64("zone_id", sel.ZoneID),
		slog.Int64("method_id", sel.MethodID),
		slog.Int("quantity", quantity),
	)
	return domain.DefaultShippingFee, nil
}
