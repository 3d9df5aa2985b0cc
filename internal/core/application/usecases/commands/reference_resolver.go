package commands

import (
	"context"
	"errors"
	"log/slog"

	"campusdelivery/internal/core/domain/model/reference"
	"campusdelivery/internal/core/ports"
)

// ResolvedReferences holds the reference rows an order submission points at.
type ResolvedReferences struct {
	Vendor  reference.Vendor
	Dropoff reference.Location
}

// ReferenceResolver maps user entered vendor and drop-off names to reference rows.
// A miss is a permanent validation failure for the request; nothing is retried.
type ReferenceResolver struct {
	vendors   ports.VendorRepository
	locations ports.LocationRepository
	logger    *slog.Logger
}

// NewReferenceResolver creates a resolver backed by the given repositories.
func NewReferenceResolver(
	vendors ports.VendorRepository,
	locations ports.LocationRepository,
	logger *slog.Logger,
) ReferenceResolver {
	return ReferenceResolver{
		vendors:   vendors,
		locations: locations,
		logger:    logger.With("component", "reference_resolver"),
	}
}

// Resolve lowercases both names and looks each up by exact canonical name, drop-off
// location first. Misses and lookup failures become ErrInvalidDropoffLocation or
// ErrInvalidVendor; the underlying cause is only logged. A lookup cut short by the
// context deadline becomes ErrReferenceLookupTimeout.
func (r ReferenceResolver) Resolve(ctx context.Context, vendorName, dropoffName string) (ResolvedReferences, error) {
	dropoff, err := r.locations.GetByName(ctx, reference.CanonicalName(dropoffName))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ResolvedReferences{}, ErrReferenceLookupTimeout
		}
		r.logger.WarnContext(ctx, "Dropoff location lookup failed", "dropoff", dropoffName, "error", err)
		return ResolvedReferences{}, ErrInvalidDropoffLocation
	}

	vendor, err := r.vendors.GetByName(ctx, reference.CanonicalName(vendorName))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ResolvedReferences{}, ErrReferenceLookupTimeout
		}
		r.logger.WarnContext(ctx, "Vendor lookup failed", "vendor", vendorName, "error", err)
		return ResolvedReferences{}, ErrInvalidVendor
	}

	return ResolvedReferences{Vendor: vendor, Dropoff: dropoff}, nil
}
