package postgres

import (
	"campusdelivery/internal/adapters/out/postgres/orderrepo"
	"campusdelivery/internal/adapters/out/postgres/referencerepo"

	"gorm.io/gorm"
)

// Migrate creates or extends the order and reference tables. Existing columns and
// rows are left untouched.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&referencerepo.VendorDTO{},
		&referencerepo.CoordinateDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
	)
}
