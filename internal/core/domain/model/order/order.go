package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"campusdelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// GuestUserID identifies the requester when no authenticated session exists.
const GuestUserID = "guest-user"

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIDIsAlreadyAssigned is returned by AssignID on an order that already has one.
	ErrOrderIDIsAlreadyAssigned = errors.New("order id is already assigned")
)

// Order is the aggregate root of one campus delivery.
//
// Order follows these invariants:
//   - Has a requester (a user id or GuestUserID), a vendor and a drop-off location
//   - Has at least one line item when created
//   - Starts in Pending status with no robot assigned
//   - Gets its identifier once, from persistence; 0 means "not yet assigned"
type Order struct {
	// id is assigned by the persistence layer, 0 until then
	id int64

	userID   string
	vendorID int64

	// dropoffLocationID references a reference.Location
	dropoffLocationID int64

	items  []LineItem
	status Status

	createdAt time.Time

	// robotID is the assigned robot, nil until the dispatch service assigns one
	robotID *string

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a Pending order that has not been persisted yet.
//
// Example:
//
//	sub, _ := order.NewLineItem(1, "Sub", 2, decimal.RequireFromString("5.00"))
//	o, err := order.NewOrder(order.GuestUserID, vendor.ID(), library.ID(),
//	    []order.LineItem{sub}, time.Now().UTC())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	userID string,
	vendorID int64,
	dropoffLocationID int64,
	items []LineItem,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setUserID(userID),
		o.setVendorID(vendorID),
		o.setDropoffLocationID(dropoffLocationID),
		o.setItems(items, true),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persisted or transported state.
// Stored orders may have lost their items, so an empty item list is accepted here.
func RestoreOrder(
	id int64,
	userID string,
	vendorID int64,
	dropoffLocationID int64,
	items []LineItem,
	status Status,
	createdAt time.Time,
	robotID *string,
) (*Order, error) {
	o := &Order{
		id:            id,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setUserID(userID),
		o.setVendorID(vendorID),
		o.setDropoffLocationID(dropoffLocationID),
		o.setItems(items, false),
		o.setStatus(status),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}
	if id < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("order id is invalid", fmt.Errorf("%d is negative", id))
	}
	if robotID != nil {
		r := *robotID
		o.robotID = &r
	}

	return o, nil
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// AssignID records the identifier handed out by persistence. It can only happen once.
func (o *Order) AssignID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id is invalid", fmt.Errorf("%d is not greater than 0", id))
	}
	if o.id != 0 {
		return ErrOrderIDIsAlreadyAssigned
	}
	o.id = id
	return nil
}

// ID returns the identifier, 0 while unassigned.
func (o *Order) ID() int64 {
	return o.id
}

// HasID reports whether persistence has assigned an identifier.
func (o *Order) HasID() bool {
	return o.id > 0
}

func (o *Order) UserID() string {
	return o.userID
}

// IsGuest reports whether the order was placed without an authenticated session.
func (o *Order) IsGuest() bool {
	return o.userID == GuestUserID
}

func (o *Order) VendorID() int64 {
	return o.vendorID
}

func (o *Order) DropoffLocationID() int64 {
	return o.dropoffLocationID
}

// Items returns a copy of the line items in submission order.
func (o *Order) Items() []LineItem {
	return slices.Clone(o.items)
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// RobotID returns the assigned robot, nil if none.
func (o *Order) RobotID() *string {
	if o.robotID == nil {
		return nil
	}
	r := *o.robotID
	return &r
}

// Total returns the exact sum of all line item subtotals.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (o *Order) setUserID(userID string) error {
	if userID == "" {
		return errs.NewValueIsRequiredError("user id")
	}
	o.userID = userID
	return nil
}

func (o *Order) setVendorID(vendorID int64) error {
	if vendorID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("vendor id is invalid", fmt.Errorf("%d is not greater than 0", vendorID))
	}
	o.vendorID = vendorID
	return nil
}

func (o *Order) setDropoffLocationID(locationID int64) error {
	if locationID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"dropoff location id is invalid",
			fmt.Errorf("%d is not greater than 0", locationID),
		)
	}
	o.dropoffLocationID = locationID
	return nil
}

func (o *Order) setItems(items []LineItem, required bool) error {
	if required && len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = createdAt
	return nil
}
