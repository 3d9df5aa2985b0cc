package ports

import (
	"context"

	"campusdelivery/internal/core/domain/model/reference"
)

// VendorRepository looks vendors up by canonical name.
type VendorRepository interface {
	// GetByName returns the vendor whose canonical name equals name exactly.
	// Returns errs.ObjectNotFoundError when no vendor matches.
	GetByName(ctx context.Context, name string) (reference.Vendor, error)
}

// LocationRepository looks drop-off locations up by canonical name.
type LocationRepository interface {
	// GetByName returns the location whose canonical name equals name exactly.
	// Returns errs.ObjectNotFoundError when no location matches.
	GetByName(ctx context.Context, name string) (reference.Location, error)
}
