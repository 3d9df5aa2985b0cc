package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/application/usecases/queries"
	"campusdelivery/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// OrderSubmitter places orders. Satisfied by commands.SubmitOrderCommandHandler.
type OrderSubmitter interface {
	Handle(ctx context.Context, cmd commands.SubmitOrderCommand) (commands.SubmitOrderResult, error)
}

// OrderReader reads stored orders. Satisfied by queries.GetOrderQueryHandler.
type OrderReader interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	submitOrderHandler OrderSubmitter

	// Query handlers
	getOrderHandler OrderReader

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	submitOrderHandler OrderSubmitter,
	getOrderHandler OrderReader,
	logger *slog.Logger,
) *Server {
	return &Server{
		submitOrderHandler: submitOrderHandler,
		getOrderHandler:    getOrderHandler,
		logger:             logger.With("component", "http_server"),
	}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/orders - validates, resolves and dispatches a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Message: "Invalid request body"})
	}

	items := make([]commands.SubmitOrderItem, len(newOrder.Items))
	for i, item := range newOrder.Items {
		items[i] = commands.SubmitOrderItem{
			ItemID:   item.ItemID,
			Name:     item.ItemName,
			Quantity: item.Quantity,
			Price:    item.Price.Decimal,
		}
	}

	cmd, err := commands.NewSubmitOrderCommand(UserID(ctx), newOrder.VendorID, newOrder.DropoffLocID, items)
	if err != nil {
		return s.writeSubmitError(ctx, err)
	}

	result, err := s.submitOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeSubmitError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		Message:         "Order created successfully",
		OrderID:         result.Order.ID(),
		Order:           toSubmittedOrder(result.Order),
		DispatchMessage: result.DispatchMessage,
	})
}

// GetOrder handles GET /api/orders/{id} - returns a stored order with its items.
// Identifiers that are not positive integers cannot name an order and yield 404.
func (s *Server) GetOrder(ctx echo.Context, id string) error {
	orderID, err := strconv.ParseInt(id, 10, 64)
	if err != nil || orderID <= 0 {
		return ctx.JSON(http.StatusNotFound, Error{Message: "Order not found"})
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusNotFound, Error{Message: "Order not found"})
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeReadError(ctx, orderID, err)
	}

	return ctx.JSON(http.StatusOK, GetOrderResponse{
		Message: "Order retrieved successfully",
		Order:   toStoredOrder(view),
	})
}

func toSubmittedOrder(o *order.Order) SubmittedOrder {
	lineItems := o.Items()
	items := make([]NewOrderItem, len(lineItems))
	for i, item := range lineItems {
		items[i] = NewOrderItem{
			ItemID:   item.ItemID(),
			ItemName: item.Name(),
			Quantity: item.Quantity(),
			Price:    Price{Decimal: item.Price()},
		}
	}

	return SubmittedOrder{
		OrderID:      o.ID(),
		UserID:       o.UserID(),
		VendorID:     o.VendorID(),
		Items:        items,
		Status:       o.Status().String(),
		CreatedAt:    o.CreatedAt(),
		DropoffLocID: o.DropoffLocationID(),
		RobotID:      o.RobotID(),
	}
}

func toStoredOrder(view queries.GetOrderQueryResponse) StoredOrder {
	items := make([]NewOrderItem, len(view.Items))
	for i, item := range view.Items {
		items[i] = NewOrderItem{
			ItemID:   item.ItemID,
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Price:    Price{Decimal: item.Price},
		}
	}

	var coordinates *Coordinates
	if view.DropoffCoordinates != nil {
		coordinates = &Coordinates{
			ID:        view.DropoffCoordinates.ID,
			Name:      view.DropoffCoordinates.Name,
			Latitude:  view.DropoffCoordinates.Latitude,
			Longitude: view.DropoffCoordinates.Longitude,
		}
	}

	return StoredOrder{
		ID:                 view.ID,
		UserID:             view.UserID,
		VendorID:           view.VendorID,
		Status:             view.Status,
		CreatedAt:          view.CreatedAt,
		DropOffLocation:    view.DropoffLocationID,
		RobotID:            view.RobotID,
		Items:              items,
		DropoffCoordinates: coordinates,
	}
}
