package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/ports"
)

// SubmitOrderResult is the outcome of an accepted submission.
type SubmitOrderResult struct {
	// Order is the order as persisted by the dispatch service.
	Order *order.Order

	// DispatchMessage is the dispatch service's status message.
	DispatchMessage string
}

const (
	DefaultLookupTimeout   = 5 * time.Second
	DefaultDispatchTimeout = 10 * time.Second
)

// SubmitOrderTimeouts bounds the outbound calls made while submitting an order.
// Zero values fall back to DefaultLookupTimeout and DefaultDispatchTimeout.
type SubmitOrderTimeouts struct {
	Lookup   time.Duration
	Dispatch time.Duration
}

// SubmitOrderCommandHandler turns a validated submission into a Pending order and
// forwards it to the dispatch service, which is the only place accepted orders are
// persisted. A failed dispatch is a failed submission; it is never retried here.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand(userID, "subway", "library", items)
//	if err != nil {
//	    return err // 400
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("order %d: %s", result.Order.ID(), result.DispatchMessage)
type SubmitOrderCommandHandler struct {
	resolver   ReferenceResolver
	dispatcher ports.OrderDispatcher
	timeouts   SubmitOrderTimeouts
	now        func() time.Time
	logger     *slog.Logger
}

// NewSubmitOrderCommandHandler creates the handler. now supplies creation timestamps.
func NewSubmitOrderCommandHandler(
	resolver ReferenceResolver,
	dispatcher ports.OrderDispatcher,
	timeouts SubmitOrderTimeouts,
	now func() time.Time,
	logger *slog.Logger,
) SubmitOrderCommandHandler {
	if timeouts.Lookup <= 0 {
		timeouts.Lookup = DefaultLookupTimeout
	}
	if timeouts.Dispatch <= 0 {
		timeouts.Dispatch = DefaultDispatchTimeout
	}
	return SubmitOrderCommandHandler{
		resolver:   resolver,
		dispatcher: dispatcher,
		timeouts:   timeouts,
		now:        now,
		logger:     logger.With("component", "submit_order_handler"),
	}
}

// Handle resolves the vendor and drop-off names, builds the Pending order and submits
// it. Dispatch failures come back as *DispatchError (matching ErrDispatchFailed) with the
// dispatch service's message, deadlines as ErrDispatchTimeout.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (SubmitOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubmitOrderResult{}, err
	}

	refs, err := h.resolve(ctx, cmd)
	if err != nil {
		return SubmitOrderResult{}, err
	}

	pending, err := order.NewOrder(
		cmd.UserID(),
		refs.Vendor.ID(),
		refs.Dropoff.ID(),
		cmd.Items(),
		h.now().UTC(),
	)
	if err != nil {
		return SubmitOrderResult{}, err
	}

	receipt, err := h.dispatch(ctx, pending)
	if err != nil {
		return SubmitOrderResult{}, err
	}

	h.logger.InfoContext(ctx, "Order submitted",
		"order_id", receipt.Order.ID(),
		"vendor_id", pending.VendorID(),
		"items", len(pending.Items()),
		"dispatch_message", receipt.Message,
	)

	return SubmitOrderResult{Order: receipt.Order, DispatchMessage: receipt.Message}, nil
}

func (h SubmitOrderCommandHandler) resolve(ctx context.Context, cmd SubmitOrderCommand) (ResolvedReferences, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, h.timeouts.Lookup)
	defer cancel()

	return h.resolver.Resolve(lookupCtx, cmd.VendorName(), cmd.DropoffName())
}

func (h SubmitOrderCommandHandler) dispatch(ctx context.Context, pending *order.Order) (ports.DispatchReceipt, error) {
	dispatchCtx, cancel := context.WithTimeout(ctx, h.timeouts.Dispatch)
	defer cancel()

	receipt, err := h.dispatcher.Submit(dispatchCtx, pending)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			h.logger.ErrorContext(ctx, "Order dispatch timed out", "error", err)
			return ports.DispatchReceipt{}, ErrDispatchTimeout
		}
		h.logger.ErrorContext(ctx, "Order dispatch failed", "error", err)
		return ports.DispatchReceipt{}, NewDispatchError(err)
	}

	if receipt.Order == nil || !receipt.Order.HasID() {
		h.logger.ErrorContext(ctx, "Dispatch service accepted the order without an id", "message", receipt.Message)
		return ports.DispatchReceipt{}, NewDispatchError(ErrDispatchMissingOrderID)
	}

	return receipt, nil
}
