package order

import (
	"errors"
	"fmt"

	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrLineItemIsNotConstructed is returned when a LineItem was not built by NewLineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one ordered item. It belongs to exactly one Order.
// Prices are exact decimals and are never rounded.
type LineItem struct { //nolint:recvcheck //using for validation
	itemID   int64
	name     string
	quantity int
	price    decimal.Decimal
	guard    guard.ConstructorGuard
}

// NewLineItem validates quantity (positive) and unit price (non-negative).
func NewLineItem(itemID int64, name string, quantity int, price decimal.Decimal) (LineItem, error) {
	item := LineItem{
		itemID: itemID,
		name:   name,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(item.setQuantity(quantity), item.setPrice(price)); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

func (i LineItem) ItemID() int64 {
	return i.itemID
}

func (i LineItem) Name() string {
	return i.name
}

func (i LineItem) Quantity() int {
	return i.quantity
}

func (i LineItem) Price() decimal.Decimal {
	return i.price
}

// Subtotal returns price × quantity.
func (i LineItem) Subtotal() decimal.Decimal {
	return i.price.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *LineItem) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price is invalid", fmt.Errorf("%s is negative", price))
	}
	i.price = price
	return nil
}
