package dispatcher_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"campusdelivery/internal/adapters/out/dispatcher"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/dispatch"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"
	"go.temporal.io/sdk/temporal"
)

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(1, "Sub", 2, decimal.RequireFromString("5.0"))
	require.NoError(t, err)
	o, err := order.NewOrder("user-1", 2, 4, []order.LineItem{item}, time.Date(2026, 10, 15, 18, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	return o
}

func newRun(getErr error, resp *dispatch.SubmitOrderResponse) *mocks.WorkflowRun {
	run := new(mocks.WorkflowRun)
	run.On("GetID").Return("order-submit-test").Maybe()
	run.On("GetRunID").Return("run-1").Maybe()
	call := run.On("Get", mock.Anything, mock.AnythingOfType("*dispatch.SubmitOrderResponse"))
	if resp != nil {
		call.Run(func(args mock.Arguments) {
			*args.Get(1).(*dispatch.SubmitOrderResponse) = *resp
		})
	}
	call.Return(getErr)
	return run
}

func TestSubmit_ReturnsStoredOrder(t *testing.T) {
	pending := newPendingOrder(t)
	stored := dispatch.PayloadFromOrder(pending)
	stored.OrderID = 77

	temporalClient := new(mocks.Client)
	temporalClient.On("ExecuteWorkflow",
		mock.Anything,
		mock.MatchedBy(func(o client.StartWorkflowOptions) bool {
			return strings.HasPrefix(o.ID, "order-submit-") &&
				o.TaskQueue == "campus-dispatch" &&
				o.WorkflowExecutionTimeout > 0
		}),
		dispatch.SubmitOrderWorkflowName,
		mock.MatchedBy(func(req dispatch.SubmitOrderRequest) bool {
			return req.Order.OrderID == 0 && len(req.Order.Items) == 1 && req.Order.Status == "pending"
		}),
	).Return(newRun(nil, &dispatch.SubmitOrderResponse{Order: stored, ReturnMessage: "SUCCESS"}), nil).Once()

	d := dispatcher.NewTemporalOrderDispatcher(temporalClient, "campus-dispatch", slog.New(slog.DiscardHandler))
	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	receipt, err := d.Submit(ctx, pending)

	require.NoError(t, err)
	assert.Equal(t, "SUCCESS", receipt.Message)
	assert.Equal(t, int64(77), receipt.Order.ID())
	assert.True(t, pending.Total().Equal(receipt.Order.Total()))
	temporalClient.AssertExpectations(t)
}

func TestSubmit_DefaultTaskQueue(t *testing.T) {
	temporalClient := new(mocks.Client)
	temporalClient.On("ExecuteWorkflow", mock.Anything,
		mock.MatchedBy(func(o client.StartWorkflowOptions) bool {
			return o.TaskQueue == dispatch.DefaultTaskQueue && o.WorkflowExecutionTimeout == 0
		}),
		mock.Anything, mock.Anything,
	).Return(nil, errors.New("namespace not found")).Once()

	d := dispatcher.NewTemporalOrderDispatcher(temporalClient, "", slog.New(slog.DiscardHandler))

	_, err := d.Submit(context.Background(), newPendingOrder(t))

	require.EqualError(t, err, "namespace not found")
	temporalClient.AssertExpectations(t)
}

func TestSubmit_RelaysDispatchServiceMessage(t *testing.T) {
	failure := temporal.NewApplicationError("failed inserting order: duplicate key", "")
	temporalClient := new(mocks.Client)
	temporalClient.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(newRun(failure, nil), nil).Once()

	d := dispatcher.NewTemporalOrderDispatcher(temporalClient, "q", slog.New(slog.DiscardHandler))

	_, err := d.Submit(context.Background(), newPendingOrder(t))

	require.Error(t, err)
	assert.Equal(t, "failed inserting order: duplicate key", err.Error())
	require.ErrorIs(t, err, failure)
	assert.NotErrorIs(t, err, context.DeadlineExceeded)
}

func TestSubmit_DeadlineExceeded(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	<-ctx.Done()

	temporalClient := new(mocks.Client)
	temporalClient.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(newRun(ctx.Err(), nil), nil).Once()

	d := dispatcher.NewTemporalOrderDispatcher(temporalClient, "q", slog.New(slog.DiscardHandler))

	_, err := d.Submit(ctx, newPendingOrder(t))

	require.ErrorIs(t, err, context.DeadlineExceeded)
}
