package collection

import (
	"context"

	"github.com/PLZ-test/wms/internal/domain/order"
)

// DeduplicationGate answers whether a raw order duplicates one already
// accepted, either persisted before this batch or earlier within it. One gate
// covers one batch; batches never share in-flight state.
//
// ERROR orders do not participate: a row that failed before must be allowed
// another attempt once corrected.
type DeduplicationGate struct {
	orders order.Repository
	seen   map[order.DuplicateKey]struct{}
}

// NewDeduplicationGate creates a gate for one batch
func NewDeduplicationGate(orders order.Repository) *DeduplicationGate {
	return &DeduplicationGate{
		orders: orders,
		seen:   make(map[order.DuplicateKey]struct{}),
	}
}

// IsDuplicate reports whether the raw order's natural key was already accepted
func (g *DeduplicationGate) IsDuplicate(ctx context.Context, raw *order.RawOrder) (bool, error) {
	key := raw.DuplicateKey()
	if _, ok := g.seen[key]; ok {
		return true, nil
	}
	return g.orders.ExistsDuplicate(ctx, key)
}

// Remember records a key just accepted, so later rows in the same batch see it
func (g *DeduplicationGate) Remember(raw *order.RawOrder) {
	g.seen[raw.DuplicateKey()] = struct{}{}
}
