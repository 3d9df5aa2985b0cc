package dispatch

import (
	"context"
	"fmt"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/ports"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
)

// OrderRegistrar stores a submitted order and returns it with its identifier.
type OrderRegistrar interface {
	Handle(ctx context.Context, cmd commands.RegisterOrderCommand) (*order.Order, error)
}

// Activities contains the side effects of SubmitOrderWorkflow.
type Activities struct {
	registrar OrderRegistrar
	publisher ports.OrderEventPublisher
}

// NewActivities wires the activities to persistence and event publishing.
func NewActivities(registrar OrderRegistrar, publisher ports.OrderEventPublisher) *Activities {
	return &Activities{registrar: registrar, publisher: publisher}
}

// PersistOrder inserts the order row and its item rows in one transaction.
// Orders that cannot be stored as submitted fail with a non-retryable error.
func (a *Activities) PersistOrder(ctx context.Context, req SubmitOrderRequest) (OrderPayload, error) {
	logger := activity.GetLogger(ctx)

	submitted, err := req.Order.ToOrder()
	if err != nil {
		return OrderPayload{}, temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("invalid order: %v", err), "InvalidOrder", err)
	}

	cmd, err := commands.NewRegisterOrderCommand(submitted)
	if err != nil {
		return OrderPayload{}, temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("invalid order: %v", err), "InvalidOrder", err)
	}

	stored, err := a.registrar.Handle(ctx, cmd)
	if err != nil {
		logger.Error("Failed to persist order", "vendorID", submitted.VendorID(), "error", err)
		return OrderPayload{}, err
	}

	logger.Info("Order stored", "orderID", stored.ID(), "items", len(stored.Items()))
	return PayloadFromOrder(stored), nil
}

// PublishOrderPlaced announces a stored order to downstream consumers.
func (a *Activities) PublishOrderPlaced(ctx context.Context, payload OrderPayload) error {
	placed, err := payload.ToOrder()
	if err != nil {
		return temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("invalid order: %v", err), "InvalidOrder", err)
	}

	if err = a.publisher.PublishOrderPlaced(ctx, placed); err != nil {
		activity.GetLogger(ctx).Warn("Failed to publish order placed event", "orderID", placed.ID(), "error", err)
		return err
	}

	return nil
}
