// Package kernel holds the value objects shared by every aggregate of the
// campus delivery domain.
//
// The package includes:
//   - Coordinates: a validated latitude/longitude pair used by drop-off locations
//
// Values are immutable and built through constructors guarded by
// guard.ConstructorGuard, so zero values fail validation.
package kernel
