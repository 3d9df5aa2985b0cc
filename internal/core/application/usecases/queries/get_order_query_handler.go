package queries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusdelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultLookupTimeout bounds a whole order read when no timeout is configured.
const DefaultLookupTimeout = 5 * time.Second

type orderRow struct {
	ID              int64     `gorm:"column:id"`
	UserID          string    `gorm:"column:userId"`
	VendorID        int64     `gorm:"column:vendorId"`
	Status          string    `gorm:"column:status"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	DropOffLocation int64     `gorm:"column:dropOffLocation"`
	RobotID         *string   `gorm:"column:robotId"`
}

type orderItemRow struct {
	ItemID   int64           `gorm:"column:itemId"`
	ItemName string          `gorm:"column:itemName"`
	Quantity int             `gorm:"column:quantity"`
	Price    decimal.Decimal `gorm:"column:price"`
}

type coordinatesRow struct {
	ID        int64   `gorm:"column:id"`
	Name      string  `gorm:"column:name"`
	Latitude  float64 `gorm:"column:latitude"`
	Longitude float64 `gorm:"column:longitude"`
}

// GetOrderQueryHandler assembles an order view from the orders, orderItems and
// coordinates tables. It only reads.
type GetOrderQueryHandler struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewGetOrderQueryHandler creates a handler for single order reads.
// A non-positive timeout falls back to DefaultLookupTimeout.
func NewGetOrderQueryHandler(db *gorm.DB, timeout time.Duration) GetOrderQueryHandler {
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	return GetOrderQueryHandler{db: db, timeout: timeout}
}

// Handle reads the order row, then its items ordered by row id, then the drop-off
// coordinates. A missing order is errs.ObjectNotFoundError; a missing drop-off
// location is not an error. Infrastructure failures are reported per step
// (ErrOrderLookupFailed, ErrOrderItemsLookupFailed, ErrDropoffLookupFailed) and a
// blown deadline as ErrOrderLookupTimeout.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	db := h.db.WithContext(ctx)

	var row orderRow
	result := db.Raw(`
		SELECT
			id,
			"userId",
			"vendorId",
			status,
			created_at,
			"dropOffLocation",
			"robotId"
		FROM orders
		WHERE id = ?
	`, query.OrderID()).Scan(&row)
	if result.Error != nil {
		return GetOrderQueryResponse{}, lookupError(ctx, ErrOrderLookupFailed, result.Error)
	}
	if result.RowsAffected == 0 {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	var itemRows []orderItemRow
	if err := db.Raw(`
		SELECT
			"itemId",
			"itemName",
			quantity,
			price
		FROM "orderItems"
		WHERE "orderId" = ?
		ORDER BY id
	`, row.ID).Scan(&itemRows).Error; err != nil {
		return GetOrderQueryResponse{}, lookupError(ctx, ErrOrderItemsLookupFailed, err)
	}

	var coords coordinatesRow
	result = db.Raw(`
		SELECT
			id,
			name,
			latitude,
			longitude
		FROM coordinates
		WHERE id = ?
	`, row.DropOffLocation).Scan(&coords)
	if result.Error != nil {
		return GetOrderQueryResponse{}, lookupError(ctx, ErrDropoffLookupFailed, result.Error)
	}

	response := GetOrderQueryResponse{
		ID:                row.ID,
		UserID:            row.UserID,
		VendorID:          row.VendorID,
		Status:            row.Status,
		CreatedAt:         row.CreatedAt,
		DropoffLocationID: row.DropOffLocation,
		RobotID:           row.RobotID,
		Items:             make([]OrderItemResponse, 0, len(itemRows)),
	}
	for _, item := range itemRows {
		response.Items = append(response.Items, OrderItemResponse(item))
	}
	if result.RowsAffected > 0 {
		response.DropoffCoordinates = &DropoffCoordinatesResponse{
			ID:        coords.ID,
			Name:      coords.Name,
			Latitude:  coords.Latitude,
			Longitude: coords.Longitude,
		}
	}

	return response, nil
}

func lookupError(ctx context.Context, step error, cause error) error {
	if errors.Is(cause, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrOrderLookupTimeout, cause)
	}
	return fmt.Errorf("%w: %w", step, cause)
}
