// Package dispatcher submits orders to the dispatch service by running its
// SubmitOrderWorkflow through a Temporal client and waiting for the result.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/ports"
	"campusdelivery/internal/dispatch"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
)

const workflowIDPrefix = "order-submit-"

// TemporalOrderDispatcher implements ports.OrderDispatcher on top of a Temporal client.
type TemporalOrderDispatcher struct {
	client    client.Client
	taskQueue string
	logger    *slog.Logger
}

// NewTemporalOrderDispatcher creates a dispatcher that starts workflows on taskQueue.
// An empty task queue falls back to dispatch.DefaultTaskQueue.
func NewTemporalOrderDispatcher(c client.Client, taskQueue string, logger *slog.Logger) *TemporalOrderDispatcher {
	if taskQueue == "" {
		taskQueue = dispatch.DefaultTaskQueue
	}
	return &TemporalOrderDispatcher{
		client:    c,
		taskQueue: taskQueue,
		logger:    logger.With("component", "order_dispatcher"),
	}
}

// Submit starts one SubmitOrderWorkflow for the order and blocks until it finishes or
// ctx ends. The workflow run is bounded by the ctx deadline as well.
//
// Timeouts come back wrapping context.DeadlineExceeded. Any other failure comes back
// as an error whose message is the dispatch service's own failure message.
func (d *TemporalOrderDispatcher) Submit(ctx context.Context, pending *order.Order) (ports.DispatchReceipt, error) {
	options := client.StartWorkflowOptions{
		ID:        workflowIDPrefix + uuid.NewString(),
		TaskQueue: d.taskQueue,
	}
	if deadline, ok := ctx.Deadline(); ok {
		options.WorkflowExecutionTimeout = time.Until(deadline)
	}

	run, err := d.client.ExecuteWorkflow(
		ctx,
		options,
		dispatch.SubmitOrderWorkflowName,
		dispatch.SubmitOrderRequest{Order: dispatch.PayloadFromOrder(pending)},
	)
	if err != nil {
		return ports.DispatchReceipt{}, d.boundaryError(ctx, err)
	}

	d.logger.DebugContext(ctx, "Order workflow started", "workflow_id", run.GetID(), "run_id", run.GetRunID())

	var resp dispatch.SubmitOrderResponse
	if err = run.Get(ctx, &resp); err != nil {
		return ports.DispatchReceipt{}, d.boundaryError(ctx, err)
	}

	stored, err := resp.Order.ToOrder()
	if err != nil {
		return ports.DispatchReceipt{}, fmt.Errorf("malformed dispatch response: %w", err)
	}

	return ports.DispatchReceipt{Order: stored, Message: resp.ReturnMessage}, nil
}

func (d *TemporalOrderDispatcher) boundaryError(ctx context.Context, err error) error {
	var timeoutErr *temporal.TimeoutError
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.As(err, &timeoutErr) {
		return fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
	}

	d.logger.WarnContext(ctx, "Dispatch service rejected order", "error", err)

	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		return &rejectionError{message: appErr.Message(), cause: err}
	}
	return err
}

// rejectionError carries the dispatch service's failure message without the
// workflow bookkeeping Temporal prepends to it.
type rejectionError struct {
	message string
	cause   error
}

func (e *rejectionError) Error() string {
	return e.message
}

func (e *rejectionError) Unwrap() error {
	return e.cause
}
