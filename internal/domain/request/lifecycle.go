package request

import "fmt"

// State machine for freight request status transitions. `assigned` is only
// ever reached through quote acceptance, never by a direct owner action.
var validTransitions = map[Status][]Status{
	StatusDraft: {
		StatusActive,
	},
	StatusActive: {
		StatusAssigned,
		StatusCancelled,
	},
	StatusAssigned: {
		StatusInTransit,
		StatusCancelled,
	},
	StatusInTransit: {
		StatusDelivered,
		StatusCancelled, // exceptional path, operator review
	},
	StatusDelivered: {
		// Terminal state - no transitions
	},
	StatusCancelled: {
		// Terminal state - no transitions
	},
}

// ValidateStatusTransition checks if status transition is allowed
func ValidateStatusTransition(currentStatus, newStatus Status) error {
	allowedStatuses, exists := validTransitions[currentStatus]
	if !exists {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidStatusTransition, currentStatus)
	}

	for _, allowed := range allowedStatuses {
		if newStatus == allowed {
			return nil
		}
	}

	return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidStatusTransition, currentStatus, newStatus)
}

// AllowedTransitions returns allowed next statuses
func AllowedTransitions(currentStatus Status) []Status {
	return validTransitions[currentStatus]
}
