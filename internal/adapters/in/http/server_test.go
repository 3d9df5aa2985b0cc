package http_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "campusdelivery/internal/adapters/in/http"
	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/application/usecases/queries"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

type MockOrderSubmitter struct{ mock.Mock }

func (m *MockOrderSubmitter) Handle(
	ctx context.Context,
	cmd commands.SubmitOrderCommand,
) (commands.SubmitOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.SubmitOrderResult), args.Error(1)
}

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Handle(
	ctx context.Context,
	query queries.GetOrderQuery,
) (queries.GetOrderQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderQueryResponse), args.Error(1)
}

type routerFixture struct {
	submitter *MockOrderSubmitter
	reader    *MockOrderReader
	echo      *echo.Echo
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	f := &routerFixture{
		submitter: &MockOrderSubmitter{},
		reader:    &MockOrderReader{},
	}

	server := httpadapter.NewServer(f.submitter, f.reader, logger)
	e, err := httpadapter.NewRouter(context.Background(), server, httpadapter.RouterConfig{
		JWTSecret: testSecret,
		Logger:    logger,
	})
	require.NoError(t, err)
	f.echo = e

	return f
}

func (f *routerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func postOrder(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func sessionCookie(t *testing.T, secret []byte, userID string) *http.Cookie {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, httpadapter.SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(secret)
	require.NoError(t, err)

	return &http.Cookie{Name: httpadapter.SessionCookieName, Value: token}
}

const validOrderBody = `{
	"vendor_id": "Subway",
	"dropoff_loc_id": "Library",
	"items": [
		{"item_id": 1, "item_name": "Veggie Delight", "quantity": 2, "price": 7.25},
		{"item_id": 3, "item_name": "Cookie", "quantity": 1, "price": 1.5}
	]
}`

var createdAt = time.Date(2026, 10, 15, 18, 30, 0, 0, time.UTC)

func storedOrder(t *testing.T, id int64, userID string) *order.Order {
	t.Helper()

	veggie, err := order.NewLineItem(1, "Veggie Delight", 2, decimal.RequireFromString("7.25"))
	require.NoError(t, err)
	cookie, err := order.NewLineItem(3, "Cookie", 1, decimal.RequireFromString("1.5"))
	require.NoError(t, err)

	o, err := order.RestoreOrder(id, userID, 12, 4, []order.LineItem{veggie, cookie}, order.Pending, createdAt, nil)
	require.NoError(t, err)
	return o
}

func TestServer_GetHealth(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestServer_CreateOrder_Success(t *testing.T) {
	// Arrange
	f := newRouterFixture(t)
	f.submitter.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SubmitOrderCommand) bool {
		items := cmd.Items()
		return cmd.UserID() == order.GuestUserID &&
			cmd.VendorName() == "Subway" &&
			cmd.DropoffName() == "Library" &&
			len(items) == 2 &&
			items[0].Quantity() == 2 &&
			items[0].Price().Equal(decimal.RequireFromString("7.25")) &&
			items[1].Name() == "Cookie"
	})).Return(commands.SubmitOrderResult{
		Order:           storedOrder(t, 77, order.GuestUserID),
		DispatchMessage: "SUCCESS",
	}, nil).Once()

	// Act
	rec := f.do(postOrder(validOrderBody))

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{
		"message": "Order created successfully",
		"order_id": 77,
		"order": {
			"order_id": 77,
			"user_id": "guest-user",
			"vendor_id": 12,
			"items": [
				{"item_id": 1, "item_name": "Veggie Delight", "quantity": 2, "price": 7.25},
				{"item_id": 3, "item_name": "Cookie", "quantity": 1, "price": 1.5}
			],
			"status": "pending",
			"created_at": "2026-10-15T18:30:00Z",
			"dropoff_loc_id": 4,
			"robot_id": null
		},
		"dispatch_message": "SUCCESS"
	}`, rec.Body.String())
	f.submitter.AssertExpectations(t)
}

func TestServer_CreateOrder_UsesSessionUser(t *testing.T) {
	// Arrange
	f := newRouterFixture(t)
	f.submitter.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SubmitOrderCommand) bool {
		return cmd.UserID() == "user-42"
	})).Return(commands.SubmitOrderResult{
		Order:           storedOrder(t, 5, "user-42"),
		DispatchMessage: "SUCCESS",
	}, nil).Once()

	req := postOrder(validOrderBody)
	req.AddCookie(sessionCookie(t, testSecret, "user-42"))

	// Act
	rec := f.do(req)

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)
	f.submitter.AssertExpectations(t)
}

func TestServer_CreateOrder_InvalidSessionIsGuest(t *testing.T) {
	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{
			name:   "wrong secret",
			cookie: sessionCookie(t, []byte("other-secret"), "user-42"),
		},
		{
			name:   "garbage token",
			cookie: &http.Cookie{Name: httpadapter.SessionCookieName, Value: "not-a-jwt"},
		},
		{
			name:   "no user claim",
			cookie: sessionCookie(t, testSecret, ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture(t)
			f.submitter.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SubmitOrderCommand) bool {
				return cmd.UserID() == order.GuestUserID
			})).Return(commands.SubmitOrderResult{
				Order:           storedOrder(t, 5, order.GuestUserID),
				DispatchMessage: "SUCCESS",
			}, nil).Once()

			req := postOrder(validOrderBody)
			req.AddCookie(tt.cookie)

			rec := f.do(req)

			assert.Equal(t, http.StatusCreated, rec.Code)
			f.submitter.AssertExpectations(t)
		})
	}
}

func TestServer_CreateOrder_RejectsInput(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "malformed json",
			body:    `{"vendor_id": "Subway",`,
			message: "Invalid request body",
		},
		{
			name:    "missing vendor",
			body:    `{"dropoff_loc_id": "Library", "items": [{"item_id": 1, "item_name": "A", "quantity": 1, "price": 1}]}`,
			message: "Vendor and items are required",
		},
		{
			name:    "empty items",
			body:    `{"vendor_id": "Subway", "dropoff_loc_id": "Library", "items": []}`,
			message: "Vendor and items are required",
		},
		{
			name:    "missing vendor and dropoff",
			body:    `{"items": []}`,
			message: "Vendor and items are required",
		},
		{
			name:    "missing dropoff",
			body:    `{"vendor_id": "Subway", "items": [{"item_id": 1, "item_name": "A", "quantity": 1, "price": 1}]}`,
			message: "Dropoff location is required",
		},
		{
			name:    "zero quantity",
			body:    `{"vendor_id": "Subway", "dropoff_loc_id": "Library", "items": [{"item_id": 1, "item_name": "A", "quantity": 0, "price": 1}]}`,
			message: "Order items are invalid",
		},
		{
			name:    "negative price",
			body:    `{"vendor_id": "Subway", "dropoff_loc_id": "Library", "items": [{"item_id": 1, "item_name": "A", "quantity": 1, "price": -1}]}`,
			message: "Order items are invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture(t)

			rec := f.do(postOrder(tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"message": %q}`, tt.message), rec.Body.String())
			f.submitter.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestServer_CreateOrder_MapsHandlerErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "invalid dropoff",
			err:    commands.ErrInvalidDropoffLocation,
			status: http.StatusBadRequest,
			body:   `{"message": "Invalid dropoff location"}`,
		},
		{
			name:   "invalid vendor",
			err:    commands.ErrInvalidVendor,
			status: http.StatusBadRequest,
			body:   `{"message": "Invalid vendor"}`,
		},
		{
			name:   "dispatch rejected",
			err:    commands.NewDispatchError(errors.New("duplicate key value violates unique constraint")),
			status: http.StatusInternalServerError,
			body: `{
				"message": "Failed to create order via dispatch",
				"error": "duplicate key value violates unique constraint"
			}`,
		},
		{
			name:   "dispatch missing id",
			err:    commands.NewDispatchError(commands.ErrDispatchMissingOrderID),
			status: http.StatusInternalServerError,
			body: `{
				"message": "Failed to create order via dispatch",
				"error": "dispatch service returned no order id"
			}`,
		},
		{
			name:   "dispatch timeout",
			err:    commands.ErrDispatchTimeout,
			status: http.StatusGatewayTimeout,
			body:   `{"message": "Order dispatch timed out"}`,
		},
		{
			name:   "lookup timeout",
			err:    commands.ErrReferenceLookupTimeout,
			status: http.StatusGatewayTimeout,
			body:   `{"message": "Vendor or location lookup timed out"}`,
		},
		{
			name:   "unexpected",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			body:   `{"message": "Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture(t)
			f.submitter.On("Handle", mock.Anything, mock.Anything).
				Return(commands.SubmitOrderResult{}, tt.err).Once()

			rec := f.do(postOrder(validOrderBody))

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestServer_GetOrder_Success(t *testing.T) {
	// Arrange
	f := newRouterFixture(t)
	robot := "robot-7"
	f.reader.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderQuery) bool {
		return q.OrderID() == 77
	})).Return(queries.GetOrderQueryResponse{
		ID:                77,
		UserID:            "user-42",
		VendorID:          12,
		Status:            "in_transit",
		CreatedAt:         createdAt,
		DropoffLocationID: 4,
		RobotID:           &robot,
		Items: []queries.OrderItemResponse{
			{ItemID: 1, ItemName: "Veggie Delight", Quantity: 2, Price: decimal.RequireFromString("7.25")},
		},
		DropoffCoordinates: &queries.DropoffCoordinatesResponse{
			ID: 4, Name: "library", Latitude: 40.4237, Longitude: -86.9212,
		},
	}, nil).Once()

	// Act
	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/orders/77", nil))

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"message": "Order retrieved successfully",
		"order": {
			"id": 77,
			"userId": "user-42",
			"vendorId": 12,
			"status": "in_transit",
			"created_at": "2026-10-15T18:30:00Z",
			"dropOffLocation": 4,
			"robotId": "robot-7",
			"items": [
				{"item_id": 1, "item_name": "Veggie Delight", "quantity": 2, "price": 7.25}
			],
			"dropoff_coordinates": {"id": 4, "name": "library", "latitude": 40.4237, "longitude": -86.9212}
		}
	}`, rec.Body.String())
	f.reader.AssertExpectations(t)
}

func TestServer_GetOrder_WithoutCoordinates(t *testing.T) {
	f := newRouterFixture(t)
	f.reader.On("Handle", mock.Anything, mock.Anything).Return(queries.GetOrderQueryResponse{
		ID:                8,
		UserID:            order.GuestUserID,
		VendorID:          12,
		Status:            "pending",
		CreatedAt:         createdAt,
		DropoffLocationID: 99,
		Items:             []queries.OrderItemResponse{},
	}, nil).Once()

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/orders/8", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"dropoff_coordinates":null`)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
}

func TestServer_GetOrder_RepeatedReadsAreIdentical(t *testing.T) {
	f := newRouterFixture(t)
	f.reader.On("Handle", mock.Anything, mock.Anything).Return(queries.GetOrderQueryResponse{
		ID:        8,
		UserID:    order.GuestUserID,
		VendorID:  12,
		Status:    "pending",
		CreatedAt: createdAt,
		Items: []queries.OrderItemResponse{
			{ItemID: 1, ItemName: "A", Quantity: 1, Price: decimal.RequireFromString("1.10")},
			{ItemID: 2, ItemName: "B", Quantity: 3, Price: decimal.RequireFromString("2")},
		},
	}, nil).Twice()

	first := f.do(httptest.NewRequest(http.MethodGet, "/api/orders/8", nil))
	second := f.do(httptest.NewRequest(http.MethodGet, "/api/orders/8", nil))

	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
}

func TestServer_GetOrder_UnusableIDIsNotFound(t *testing.T) {
	for _, id := range []string{"abc", "0", "-3", "1.5"} {
		t.Run(id, func(t *testing.T) {
			f := newRouterFixture(t)

			rec := f.do(httptest.NewRequest(http.MethodGet, "/api/orders/"+id, nil))

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.JSONEq(t, `{"message": "Order not found"}`, rec.Body.String())
			f.reader.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestServer_GetOrder_MapsHandlerErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", errs.NewObjectNotFoundError("order", int64(5)), http.StatusNotFound, "Order not found"},
		{"order row", fmt.Errorf("%w: %w", queries.ErrOrderLookupFailed, errors.New("conn reset")),
			http.StatusInternalServerError, "Failed to fetch order"},
		{"items", fmt.Errorf("%w: %w", queries.ErrOrderItemsLookupFailed, errors.New("conn reset")),
			http.StatusInternalServerError, "Failed to fetch order items"},
		{"dropoff", fmt.Errorf("%w: %w", queries.ErrDropoffLookupFailed, errors.New("conn reset")),
			http.StatusInternalServerError, "Failed to fetch dropoff location"},
		{"timeout", queries.ErrOrderLookupTimeout, http.StatusGatewayTimeout, "Order lookup timed out"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture(t)
			f.reader.On("Handle", mock.Anything, mock.Anything).
				Return(queries.GetOrderQueryResponse{}, tt.err).Once()

			rec := f.do(httptest.NewRequest(http.MethodGet, "/api/orders/5", nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"message": %q}`, tt.message), rec.Body.String())
		})
	}
}

func TestServer_RecoversFromPanics(t *testing.T) {
	f := newRouterFixture(t)
	f.reader.On("Handle", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { panic("nil map") }).
		Return(queries.GetOrderQueryResponse{}, nil)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/orders/5", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message": "Internal server error"}`, rec.Body.String())
}

func TestRouter_ServesAPIDocument(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"operationId":"CreateOrder"`)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestRouter_UnknownRoute(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/vendors", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message": "Not Found"}`, rec.Body.String())
}
