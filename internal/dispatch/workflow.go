package dispatch

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
)

const (
	// DefaultTaskQueue is the task queue the dispatch worker listens on.
	DefaultTaskQueue = "order-dispatch"

	// SubmitOrderWorkflowName is the registered name of SubmitOrderWorkflow.
	SubmitOrderWorkflowName = "SubmitOrderWorkflow"

	// SuccessMessage is returned to the submitter once the order is stored.
	SuccessMessage = "SUCCESS"

	persistOrderActivity       = "PersistOrder"
	publishOrderPlacedActivity = "PublishOrderPlaced"

	maxPersistDuration = 10 * time.Second
)

// SubmitOrderWorkflow stores a submitted order and announces it.
//
// The order is persisted exactly once: a failed insert fails the workflow and the
// submitter sees the failure message. The insert must finish within what is left of
// the workflow execution timeout, which the submitter sets to its own deadline.
// Announcing the order is best effort; a failed publish is logged and the order
// still counts as accepted.
func SubmitOrderWorkflow(ctx workflow.Context, req SubmitOrderRequest) (SubmitOrderResponse, error) {
	logger := workflow.GetLogger(ctx)

	persistCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: persistTimeout(ctx),
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})

	var stored OrderPayload
	if err := workflow.ExecuteActivity(persistCtx, persistOrderActivity, req).Get(ctx, &stored); err != nil {
		logger.Error("Order was not persisted", "vendorID", req.Order.VendorID, "error", err)
		return SubmitOrderResponse{}, err
	}
	logger.Info("Order persisted", "orderID", stored.OrderID)

	publishCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 3 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})

	if err := workflow.ExecuteActivity(publishCtx, publishOrderPlacedActivity, stored).Get(ctx, nil); err != nil {
		logger.Warn("Order placed event was not published", "orderID", stored.OrderID, "error", err)
	}

	return SubmitOrderResponse{Order: stored, ReturnMessage: SuccessMessage}, nil
}

// persistTimeout is maxPersistDuration capped by the time left before the workflow
// execution times out.
func persistTimeout(ctx workflow.Context) time.Duration {
	info := workflow.GetInfo(ctx)
	if info.WorkflowExecutionTimeout <= 0 {
		return maxPersistDuration
	}

	remaining := info.WorkflowExecutionTimeout - workflow.Now(ctx).Sub(info.WorkflowStartTime)
	switch {
	case remaining >= maxPersistDuration:
		return maxPersistDuration
	case remaining < time.Millisecond:
		return time.Millisecond
	default:
		return remaining
	}
}

// Register adds SubmitOrderWorkflow and its activities to a Temporal worker.
func Register(r worker.Registry, activities *Activities) {
	r.RegisterWorkflowWithOptions(SubmitOrderWorkflow, workflow.RegisterOptions{Name: SubmitOrderWorkflowName})
	r.RegisterActivity(activities)
}
