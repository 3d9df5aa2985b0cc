// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and the "orders" and "orderItems" tables.
package orderrepo

import (
	"time"

	"campusdelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO represents one row of the "orders" table.
// Column names keep the camelCase spelling the tables were created with.
type OrderDTO struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID          string    `gorm:"column:userId;not null"`
	VendorID        int64     `gorm:"column:vendorId;not null;index"`
	Status          string    `gorm:"column:status;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;not null"`
	DropOffLocation int64     `gorm:"column:dropOffLocation;not null"`
	RobotID         *string   `gorm:"column:robotId"`
}

// TableName specifies the database table name for order rows.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one line item row of the "orderItems" table.
// Rows are read back ordered by ID, which keeps the submitted item order.
type OrderItemDTO struct {
	ID       int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID  int64           `gorm:"column:orderId;not null;index"`
	ItemID   int64           `gorm:"column:itemId;not null"`
	ItemName string          `gorm:"column:itemName"`
	Quantity int             `gorm:"column:quantity;not null"`
	Price    decimal.Decimal `gorm:"column:price;type:numeric;not null"`
}

// TableName specifies the database table name for order item rows.
func (OrderItemDTO) TableName() string {
	return "orderItems"
}

func fromDomain(aggregate *order.Order) (OrderDTO, []OrderItemDTO) {
	dto := OrderDTO{
		ID:              aggregate.ID(),
		UserID:          aggregate.UserID(),
		VendorID:        aggregate.VendorID(),
		Status:          aggregate.Status().String(),
		CreatedAt:       aggregate.CreatedAt(),
		DropOffLocation: aggregate.DropoffLocationID(),
		RobotID:         aggregate.RobotID(),
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:  aggregate.ID(),
			ItemID:   item.ItemID(),
			ItemName: item.Name(),
			Quantity: item.Quantity(),
			Price:    item.Price(),
		})
	}

	return dto, items
}

func toDomain(dto OrderDTO, itemDTOs []OrderItemDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		item, itemErr := order.NewLineItem(itemDTO.ItemID, itemDTO.ItemName, itemDTO.Quantity, itemDTO.Price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		dto.ID,
		dto.UserID,
		dto.VendorID,
		dto.DropOffLocation,
		items,
		status,
		dto.CreatedAt,
		dto.RobotID,
	)
}
