package reference

import (
	"errors"
	"fmt"
	"strings"

	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

// ErrVendorIsNotConstructed is returned when a Vendor was not built by NewVendor.
var ErrVendorIsNotConstructed = errors.New("Vendor must be created via NewVendor constructor")

// Vendor is a food vendor that orders are placed with.
type Vendor struct { //nolint:recvcheck //using for validation
	id    int64
	name  string
	guard guard.ConstructorGuard
}

// NewVendor builds a Vendor. The name is stored in canonical (lowercase) form.
func NewVendor(id int64, name string) (Vendor, error) {
	v := Vendor{guard: guard.NewConstructorGuard()}

	if err := errors.Join(v.setID(id), v.setName(name)); err != nil {
		return Vendor{}, err
	}

	return v, nil
}

func (v Vendor) Validate() error {
	return v.guard.Validate(ErrVendorIsNotConstructed)
}

func (v Vendor) ID() int64 {
	return v.id
}

func (v Vendor) Name() string {
	return v.name
}

func (v *Vendor) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("vendor id", fmt.Errorf("%d is not greater than 0", id))
	}
	v.id = id
	return nil
}

func (v *Vendor) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("vendor name")
	}
	v.name = CanonicalName(name)
	return nil
}

// CanonicalName normalizes a user entered display name to the form stored in the
// reference tables. Lookups match the canonical name exactly.
func CanonicalName(name string) string {
	return strings.ToLower(name)
}
