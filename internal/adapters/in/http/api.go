package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Price is an exact amount written as a plain JSON number. Numeric strings are
// accepted on input as well.
type Price struct {
	decimal.Decimal
}

// MarshalJSON writes the amount unquoted, e.g. 7.25.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// NewOrderItem is one cart line in a submission.
type NewOrderItem struct {
	ItemID   int64  `json:"item_id"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
	Price    Price  `json:"price"`
}

// NewOrder is the body of POST /api/orders. VendorID and DropoffLocID carry display
// names, not numeric identifiers.
type NewOrder struct {
	VendorID     string         `json:"vendor_id"`
	Items        []NewOrderItem `json:"items"`
	DropoffLocID string         `json:"dropoff_loc_id"`
}

// SubmittedOrder is an order as accepted by the dispatch service.
type SubmittedOrder struct {
	OrderID      int64          `json:"order_id"`
	UserID       string         `json:"user_id"`
	VendorID     int64          `json:"vendor_id"`
	Items        []NewOrderItem `json:"items"`
	Status       string         `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	DropoffLocID int64          `json:"dropoff_loc_id"`
	RobotID      *string        `json:"robot_id"`
}

type CreateOrderResponse struct {
	Message         string         `json:"message"`
	OrderID         int64          `json:"order_id"`
	Order           SubmittedOrder `json:"order"`
	DispatchMessage string         `json:"dispatch_message"`
}

type Coordinates struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// StoredOrder is an order as read back from the database. Field names follow the
// stored column names.
type StoredOrder struct {
	ID                 int64          `json:"id"`
	UserID             string         `json:"userId"`
	VendorID           int64          `json:"vendorId"`
	Status             string         `json:"status"`
	CreatedAt          time.Time      `json:"created_at"`
	DropOffLocation    int64          `json:"dropOffLocation"`
	RobotID            *string        `json:"robotId"`
	Items              []NewOrderItem `json:"items"`
	DropoffCoordinates *Coordinates   `json:"dropoff_coordinates"`
}

type GetOrderResponse struct {
	Message string      `json:"message"`
	Order   StoredOrder `json:"order"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /health)
	GetHealth(ctx echo.Context) error
	// (POST /api/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/orders/{id})
	GetOrder(ctx echo.Context, id string) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// GetHealth converts echo context to params.
func (w *ServerInterfaceWrapper) GetHealth(ctx echo.Context) error {
	return w.Handler.GetHealth(ctx)
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var id string

	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}

	return w.Handler.GetOrder(ctx, id)
}

// EchoRouter is the subset of echo routing used to register handlers.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/health", wrapper.GetHealth)
	router.POST(baseURL+"/api/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/orders/:id", wrapper.GetOrder)
}
