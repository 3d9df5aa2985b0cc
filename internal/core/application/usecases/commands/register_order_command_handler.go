package commands

import (
	"context"

	"campusdelivery/internal/core/domain/model/order"
)

// RegisterOrderCommandHandler persists a submitted order and its line items in one
// transaction. It runs inside the dispatch service, behind the dispatch boundary.
type RegisterOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRegisterOrderCommandHandler creates a handler for order registration.
// Requires an OrderUoWFactory for transactional persistence.
func NewRegisterOrderCommandHandler(uowFactory OrderUoWFactory) RegisterOrderCommandHandler {
	return RegisterOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores the order and returns it as read back from the same transaction,
// with its generated identifier. Nothing is stored when any step fails, including
// ctx ending before the commit.
func (h RegisterOrderCommandHandler) Handle(ctx context.Context, cmd RegisterOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	registered := cmd.Order()
	if err := repo.Add(ctx, registered); err != nil {
		return nil, err
	}

	stored, err := repo.Get(ctx, registered.ID())
	if err != nil {
		return nil, err
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return stored, nil
}
