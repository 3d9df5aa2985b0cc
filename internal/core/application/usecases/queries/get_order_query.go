// Package queries contains read-only operations that assemble views straight from
// the database without loading aggregates.
package queries

import (
	"errors"
	"fmt"
	"time"

	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)

	// ErrOrderLookupFailed means the order row could not be read.
	ErrOrderLookupFailed = errors.New("failed to fetch order")

	// ErrOrderItemsLookupFailed means the order row was read but its items could not be.
	ErrOrderItemsLookupFailed = errors.New("failed to fetch order items")

	// ErrDropoffLookupFailed means the drop-off coordinates could not be read.
	ErrDropoffLookupFailed = errors.New("failed to fetch dropoff location")

	// ErrOrderLookupTimeout means the read did not finish before its deadline.
	ErrOrderLookupTimeout = errors.New("order lookup timed out")
)

// GetOrderQuery retrieves one order with its line items and drop-off coordinates.
//
// Example:
//
//	query, err := NewGetOrderQuery(42)
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // no such order
//	}
type GetOrderQuery struct {
	orderID int64

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the order with the given identifier.
// Identifiers start at 1.
func NewGetOrderQuery(orderID int64) (GetOrderQuery, error) {
	if orderID <= 0 {
		return GetOrderQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"order id",
			fmt.Errorf("%d is not greater than 0", orderID),
		)
	}

	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() int64 {
	return q.orderID
}

// GetOrderQueryResponse is the stored state of one order.
// Items keep insertion order; DropoffCoordinates is nil when the drop-off
// location no longer exists.
type GetOrderQueryResponse struct {
	ID                 int64
	UserID             string
	VendorID           int64
	Status             string
	CreatedAt          time.Time
	DropoffLocationID  int64
	RobotID            *string
	Items              []OrderItemResponse
	DropoffCoordinates *DropoffCoordinatesResponse
}

// OrderItemResponse is one stored line item.
type OrderItemResponse struct {
	ItemID   int64
	ItemName string
	Quantity int
	Price    decimal.Decimal
}

// DropoffCoordinatesResponse is the named point an order is delivered to.
type DropoffCoordinatesResponse struct {
	ID        int64
	Name      string
	Latitude  float64
	Longitude float64
}
