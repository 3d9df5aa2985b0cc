package commands

import (
	"errors"
	"fmt"
	"strings"

	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderItem is one cart line as submitted by the client.
type SubmitOrderItem struct {
	ItemID   int64
	Name     string
	Quantity int
	Price    decimal.Decimal
}

// SubmitOrderCommand is a validated request to place an order. Vendor and drop-off
// location are still raw display names; SubmitOrderCommandHandler resolves them.
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	userID      string
	vendorName  string
	dropoffName string
	items       []order.LineItem

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand validates the presence and shape of a submission and stops at
// the first failing rule:
//  1. vendor name and a non-empty item list (ErrVendorAndItemsRequired)
//  2. drop-off location name (ErrDropoffLocationRequired)
//  3. every item has a positive quantity and a non-negative price (ErrOrderItemsInvalid)
//
// An empty userID means no authenticated session and becomes order.GuestUserID.
func NewSubmitOrderCommand(
	userID string,
	vendorName string,
	dropoffName string,
	items []SubmitOrderItem,
) (SubmitOrderCommand, error) {
	if strings.TrimSpace(vendorName) == "" || len(items) == 0 {
		return SubmitOrderCommand{}, ErrVendorAndItemsRequired
	}

	if strings.TrimSpace(dropoffName) == "" {
		return SubmitOrderCommand{}, ErrDropoffLocationRequired
	}

	lineItems := make([]order.LineItem, 0, len(items))
	for i, item := range items {
		lineItem, err := order.NewLineItem(item.ItemID, item.Name, item.Quantity, item.Price)
		if err != nil {
			return SubmitOrderCommand{}, errors.Join(ErrOrderItemsInvalid, fmt.Errorf("item %d: %w", i, err))
		}
		lineItems = append(lineItems, lineItem)
	}

	if userID == "" {
		userID = order.GuestUserID
	}

	return SubmitOrderCommand{
		userID:      userID,
		vendorName:  vendorName,
		dropoffName: dropoffName,
		items:       lineItems,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// UserID returns the requester or order.GuestUserID.
func (c SubmitOrderCommand) UserID() string {
	return c.userID
}

// VendorName returns the raw vendor display name.
func (c SubmitOrderCommand) VendorName() string {
	return c.vendorName
}

// DropoffName returns the raw drop-off location display name.
func (c SubmitOrderCommand) DropoffName() string {
	return c.dropoffName
}

// Items returns the validated line items in submission order.
func (c SubmitOrderCommand) Items() []order.LineItem {
	out := make([]order.LineItem, len(c.items))
	copy(out, c.items)
	return out
}
