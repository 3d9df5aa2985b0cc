package http_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "campusdelivery/internal/adapters/in/http"
	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/model/reference"
	"campusdelivery/internal/core/ports"
	"campusdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vendorsByName map[string]reference.Vendor

func (v vendorsByName) GetByName(_ context.Context, name string) (reference.Vendor, error) {
	if vendor, ok := v[name]; ok {
		return vendor, nil
	}
	return reference.Vendor{}, errs.NewObjectNotFoundError("vendor", name)
}

type locationsByName map[string]reference.Location

func (l locationsByName) GetByName(_ context.Context, name string) (reference.Location, error) {
	if location, ok := l[name]; ok {
		return location, nil
	}
	return reference.Location{}, errs.NewObjectNotFoundError("location", name)
}

// recordingDispatcher accepts every order, assigns the next id and keeps what it saw.
type recordingDispatcher struct {
	nextID    int64
	submitted []*order.Order
}

func (d *recordingDispatcher) Submit(_ context.Context, pending *order.Order) (ports.DispatchReceipt, error) {
	d.submitted = append(d.submitted, pending)
	if err := pending.AssignID(d.nextID); err != nil {
		return ports.DispatchReceipt{}, err
	}
	d.nextID++
	return ports.DispatchReceipt{Order: pending, Message: "SUCCESS"}, nil
}

func newSubmitFlowRouter(t *testing.T, dispatcher ports.OrderDispatcher) http.Handler {
	t.Helper()

	coords, err := kernel.NewCoordinates(40.4237, -86.9212)
	require.NoError(t, err)
	library, err := reference.NewLocation(4, "library", coords)
	require.NoError(t, err)
	subway, err := reference.NewVendor(12, "subway")
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	resolver := commands.NewReferenceResolver(
		vendorsByName{"subway": subway},
		locationsByName{"library": library},
		logger,
	)
	submit := commands.NewSubmitOrderCommandHandler(resolver, dispatcher, commands.SubmitOrderTimeouts{},
		func() time.Time { return createdAt }, logger)

	server := httpadapter.NewServer(submit, &MockOrderReader{}, logger)
	e, err := httpadapter.NewRouter(context.Background(), server, httpadapter.RouterConfig{Logger: logger})
	require.NoError(t, err)
	return e
}

func TestSubmitFlow_CreatesPendingOrderForResolvedVendor(t *testing.T) {
	// Arrange
	dispatcher := &recordingDispatcher{nextID: 101}
	router := newSubmitFlowRouter(t, dispatcher)

	// Act
	rec := serve(router, postOrder(`{
		"vendor_id": "subway",
		"items": [{"item_id": 1, "item_name": "Sub", "quantity": 2, "price": 5.0}],
		"dropoff_loc_id": "library"
	}`))

	// Assert
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{
		"message": "Order created successfully",
		"order_id": 101,
		"order": {
			"order_id": 101,
			"user_id": "guest-user",
			"vendor_id": 12,
			"items": [{"item_id": 1, "item_name": "Sub", "quantity": 2, "price": 5}],
			"status": "pending",
			"created_at": "2026-10-15T18:30:00Z",
			"dropoff_loc_id": 4,
			"robot_id": null
		},
		"dispatch_message": "SUCCESS"
	}`, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"price":5}`)

	require.Len(t, dispatcher.submitted, 1)
	assert.Equal(t, order.Pending, dispatcher.submitted[0].Status())
	assert.Nil(t, dispatcher.submitted[0].RobotID())
}

func TestSubmitFlow_NamesAreCaseInsensitive(t *testing.T) {
	dispatcher := &recordingDispatcher{nextID: 1}
	router := newSubmitFlowRouter(t, dispatcher)

	rec := serve(router, postOrder(`{
		"vendor_id": "SubWay",
		"items": [{"item_id": 1, "item_name": "Sub", "quantity": 1, "price": 5}],
		"dropoff_loc_id": "LIBRARY"
	}`))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, dispatcher.submitted, 1)
	assert.Equal(t, int64(12), dispatcher.submitted[0].VendorID())
	assert.Equal(t, int64(4), dispatcher.submitted[0].DropoffLocationID())
}

func TestSubmitFlow_ResolutionFailuresNeverDispatch(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "unknown vendor",
			body:    `{"vendor_id": "panda", "items": [{"item_id": 1, "item_name": "A", "quantity": 1, "price": 1}], "dropoff_loc_id": "library"}`,
			message: "Invalid vendor",
		},
		{
			name:    "unknown dropoff",
			body:    `{"vendor_id": "subway", "items": [{"item_id": 1, "item_name": "A", "quantity": 1, "price": 1}], "dropoff_loc_id": "moon"}`,
			message: "Invalid dropoff location",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher := &recordingDispatcher{nextID: 1}
			router := newSubmitFlowRouter(t, dispatcher)

			rec := serve(router, postOrder(tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"message": "`+tt.message+`"}`, rec.Body.String())
			assert.Empty(t, dispatcher.submitted)
		})
	}
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
