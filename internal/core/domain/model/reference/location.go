package reference

import (
	"errors"
	"fmt"
	"strings"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

// ErrLocationIsNotConstructed is returned when a Location was not built by NewLocation.
var ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation constructor")

// Location is a named drop-off point on campus.
type Location struct { //nolint:recvcheck //using for validation
	id          int64
	name        string
	coordinates kernel.Coordinates
	guard       guard.ConstructorGuard
}

// NewLocation builds a Location with a canonical name and validated coordinates.
func NewLocation(id int64, name string, coordinates kernel.Coordinates) (Location, error) {
	l := Location{guard: guard.NewConstructorGuard()}

	if err := errors.Join(l.setID(id), l.setName(name), l.setCoordinates(coordinates)); err != nil {
		return Location{}, err
	}

	return l, nil
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) ID() int64 {
	return l.id
}

func (l Location) Name() string {
	return l.name
}

func (l Location) Coordinates() kernel.Coordinates {
	return l.coordinates
}

func (l *Location) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("location id", fmt.Errorf("%d is not greater than 0", id))
	}
	l.id = id
	return nil
}

func (l *Location) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("location name")
	}
	l.name = CanonicalName(name)
	return nil
}

func (l *Location) setCoordinates(coordinates kernel.Coordinates) error {
	if err := coordinates.Validate(); err != nil {
		return err
	}
	l.coordinates = coordinates
	return nil
}
