package commands

import (
	"errors"
	"fmt"

	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrRegisterOrderCommandIsNotConstructed = errors.New(
	"RegisterOrderCommand must be created via NewRegisterOrderCommand constructor",
)

// RegisterOrderCommand asks the dispatch service to persist a submitted order.
// The order must be Pending and must not have an identifier yet.
type RegisterOrderCommand struct { //nolint:recvcheck //using for validation
	order *order.Order

	guard guard.ConstructorGuard
}

// NewRegisterOrderCommand wraps a freshly submitted order.
func NewRegisterOrderCommand(submitted *order.Order) (RegisterOrderCommand, error) {
	if err := submitted.Validate(); err != nil {
		return RegisterOrderCommand{}, err
	}
	if submitted.HasID() {
		return RegisterOrderCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"order id",
			fmt.Errorf("order already has id %d", submitted.ID()),
		)
	}
	if submitted.Status() != order.Pending {
		return RegisterOrderCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to register", submitted.Status()),
		)
	}
	if len(submitted.Items()) == 0 {
		return RegisterOrderCommand{}, errs.NewValueIsRequiredError("items")
	}

	return RegisterOrderCommand{
		order: submitted,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterOrderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterOrderCommandIsNotConstructed)
}

// Order returns the order to persist.
func (c RegisterOrderCommand) Order() *order.Order {
	return c.order
}
