package order

import (
	"fmt"
	"strings"

	"campusdelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Preparing ──> Ready ──> InTransit ──> Delivered
//	   │            │           │           │
//	   └────────────┴───────────┴───────────┴──────> Cancelled
//
// The numeric order of the forward states is their position in the lifecycle.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the status of a freshly submitted order.
	Pending

	// Preparing means the vendor is preparing the order.
	Preparing

	// Ready means the order is waiting for pickup.
	Ready

	// InTransit means a robot is carrying the order to the drop-off location.
	InTransit

	// Delivered is a final state.
	Delivered

	// Cancelled is a final state reachable from any non-final state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Preparing: "preparing",
		Ready:     "ready",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

func getStatusDisplayNames() map[Status]string {
	//nolint:exhaustive // Unknown falls back to the raw name
	return map[Status]string{
		Pending:   "Pending",
		Preparing: "Preparing",
		Ready:     "Ready for Pickup",
		InTransit: "In Transit",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// ParseStatus converts a wire name such as "in_transit" into a Status.
// Matching is case-insensitive.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(s)
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the status is one of the known lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return getStatusStrings()[Unknown]
}

// DisplayName returns the customer facing label of the status.
func (s Status) DisplayName() string {
	if name, ok := getStatusDisplayNames()[s]; ok {
		return name
	}
	return s.String()
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanAdvanceTo checks whether moving from s to next goes forward through the lifecycle.
//
// Valid transitions:
//   - any forward step between Pending and Delivered (stages may be skipped)
//   - any non-terminal status -> Cancelled
//
// Invalid transitions:
//   - anything out of Delivered or Cancelled
//   - backwards or same-status moves
func (s Status) CanAdvanceTo(next Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	if s.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is a final status", s),
		)
	}
	if next == Cancelled || next > s {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s cannot move back to %s", s, next),
	)
}

// ProgressStage is one step of the tracking progress indicator.
type ProgressStage struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

var progressStages = []struct {
	name    string
	reached Status
}{
	{name: "Order Placed", reached: Pending},
	{name: "Preparing", reached: Preparing},
	{name: "Ready", reached: Ready},
	{name: "In Transit", reached: InTransit},
	{name: "Delivered", reached: Delivered},
}

// Progress derives the five stage tracking indicator from the status alone.
// A stage is complete when the status belongs to the set of statuses at or after it
// on the forward path, so InTransit completes Order Placed, Preparing, Ready and
// In Transit. Cancelled and Unknown complete nothing.
func (s Status) Progress() []ProgressStage {
	stages := make([]ProgressStage, len(progressStages))
	onForwardPath := s >= Pending && s <= Delivered
	for i, stage := range progressStages {
		stages[i] = ProgressStage{
			Name:      stage.name,
			Completed: onForwardPath && s >= stage.reached,
		}
	}
	return stages
}
