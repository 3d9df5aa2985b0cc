package ports

import (
	"context"

	"campusdelivery/internal/core/domain/model/order"
)

// DispatchReceipt is what the dispatch service answers for an accepted order.
type DispatchReceipt struct {
	// Order is the order as persisted by the dispatch service, with its identifier.
	Order *order.Order

	// Message is the human readable status message of the dispatch service.
	Message string
}

// OrderDispatcher forwards a new order to the external dispatch service, which
// persists it and later assigns a robot. One synchronous call per order; no retries.
type OrderDispatcher interface {
	Submit(ctx context.Context, aggregate *order.Order) (DispatchReceipt, error)
}

// OrderEventPublisher announces accepted orders to downstream consumers
// (kitchen displays, the robot manager).
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, aggregate *order.Order) error
}
