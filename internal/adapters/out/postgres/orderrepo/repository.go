package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order row and its item rows, then assigns the generated id to the aggregate.
// Either every row is written or none is.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.HasID() {
		return order.ErrOrderIDIsAlreadyAssigned
	}

	dto, items := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&dto).Error; err != nil {
			return fmt.Errorf("failed inserting order: %w", err)
		}

		for i := range items {
			items[i].OrderID = dto.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("failed inserting order items: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	return aggregate.AssignID(dto.ID)
}

// Get retrieves an order with its line items in insertion order.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not greater than 0", id))
	}

	db := r.db.WithContext(ctx)

	var dto OrderDTO
	if err := db.First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	var items []OrderItemDTO
	if err := db.Where(`"orderId" = ?`, id).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, items)
}
