package referencerepo

import (
	"context"
	"errors"

	"campusdelivery/internal/core/domain/model/reference"
	"campusdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormVendorRepository implements ports.VendorRepository using GORM.
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GORM vendor repository.
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// GetByName retrieves the vendor whose stored name equals name exactly.
func (r *GormVendorRepository) GetByName(ctx context.Context, name string) (reference.Vendor, error) {
	var dto VendorDTO
	if err := r.db.WithContext(ctx).First(&dto, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reference.Vendor{}, errs.NewObjectNotFoundError("vendor", name)
		}
		return reference.Vendor{}, err
	}

	return vendorToDomain(dto)
}

// GormLocationRepository implements ports.LocationRepository using GORM.
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GORM drop-off location repository.
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// GetByName retrieves the drop-off location whose stored name equals name exactly.
func (r *GormLocationRepository) GetByName(ctx context.Context, name string) (reference.Location, error) {
	var dto CoordinateDTO
	if err := r.db.WithContext(ctx).First(&dto, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reference.Location{}, errs.NewObjectNotFoundError("location", name)
		}
		return reference.Location{}, err
	}

	return locationToDomain(dto)
}
