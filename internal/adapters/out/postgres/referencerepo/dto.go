// Package referencerepo reads the vendor and drop-off location reference tables.
// Both tables are maintained outside the ordering workflow and are only read here.
package referencerepo

import (
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/reference"
)

// VendorDTO represents one row of the "vendors" table.
type VendorDTO struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;not null;uniqueIndex"`
}

// TableName specifies the database table name for vendors.
func (VendorDTO) TableName() string {
	return "vendors"
}

// CoordinateDTO represents one named drop-off point of the "coordinates" table.
type CoordinateDTO struct {
	ID        int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string  `gorm:"column:name;not null;uniqueIndex"`
	Latitude  float64 `gorm:"column:latitude;not null"`
	Longitude float64 `gorm:"column:longitude;not null"`
}

// TableName specifies the database table name for drop-off locations.
func (CoordinateDTO) TableName() string {
	return "coordinates"
}

func vendorToDomain(dto VendorDTO) (reference.Vendor, error) {
	return reference.NewVendor(dto.ID, dto.Name)
}

func locationToDomain(dto CoordinateDTO) (reference.Location, error) {
	coordinates, err := kernel.NewCoordinates(dto.Latitude, dto.Longitude)
	if err != nil {
		return reference.Location{}, err
	}

	return reference.NewLocation(dto.ID, dto.Name, coordinates)
}
