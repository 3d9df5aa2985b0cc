// Package ports defines the contracts between the ordering core and its adapters:
// persistence, reference data lookups, the dispatch service and event publishing.
package ports

import (
	"context"

	"campusdelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its line items and assigns the
	// generated identifier to the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its line items.
	// Returns errs.ObjectNotFoundError when no order has that identifier.
	Get(ctx context.Context, id int64) (*order.Order, error)
}
