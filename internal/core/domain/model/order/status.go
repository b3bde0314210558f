package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Processing ──> Shipped ──> Delivered
//	   │            │             │             │
//	   └────────────┴─────────────┴─────────────┴──────> Cancelled
//
// Delivered and Cancelled are terminal states with no outgoing transitions.
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first composed.
	// Item composition may only change while the order is Pending.
	Pending

	// Confirmed indicates the order has been accepted for fulfillment.
	Confirmed

	// Processing indicates the order is being picked and packed.
	Processing

	// Shipped indicates the order has left the warehouse.
	Shipped

	// Delivered indicates the order reached the customer.
	// This is a terminal state with no further transitions allowed.
	Delivered

	// Cancelled indicates the order was abandoned before delivery.
	// This is a terminal state with no further transitions allowed.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Confirmed:  "Confirmed",
		Processing: "Processing",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Confirmed:  "Confirmed",
		Processing: "Processing",
		Shipped:    "Shipped",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
	}
}

// transitions is the single reviewable artifact defining the allowed
// next states for every status. Terminal states map to an empty set.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {Confirmed, Cancelled},
		Confirmed:  {Processing, Cancelled},
		Processing: {Shipped, Cancelled},
		Shipped:    {Delivered, Cancelled},
		Delivered:  {},
		Cancelled:  {},
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Confirmed, Processing, Shipped, Delivered,
// Cancelled. Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values. This method implements the
// fmt.Stringer interface and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status from its string representation.
// Used when reconstructing orders from external requests.
// Returns an error if the string does not name a valid status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether the status has no outgoing transitions.
// Delivered and Cancelled are the terminal states.
func (s Status) IsTerminal() bool {
	return len(transitions()[s]) == 0 && s.Validate() == nil
}

// CanModifyItems reports whether item composition may change in this status.
// Items may only be added, removed, or quantity-updated while Pending.
func (s Status) CanModifyItems() bool {
	return s == Pending
}

// CanTransitionTo checks whether the transition table allows moving from
// this status to next, without performing the transition.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo transitions the status to next according to the transition table.
//
// Returns:
//   - (next, nil) on a valid transition
//   - (0, error) if the transition is not allowed; the error names both the
//     current and the requested state
//
// This method is used by Order.UpdateStatus() to enforce state transitions.
//
// Example:
//
//	newStatus, err := currentStatus.TransitionTo(order.Confirmed)
//	if err != nil {
//	    // Handle invalid transition
//	}
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(next) {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("invalid transition from %s to %s", s, next),
		)
	}

	return next, nil
}
