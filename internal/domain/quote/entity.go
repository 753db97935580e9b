package quote

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a quote
type Status string

const (
	StatusPending    Status = "pending"    // Submitted, awaiting the owner's decision
	StatusAccepted   Status = "accepted"   // Chosen by the request owner
	StatusRejected   Status = "rejected"   // Declined by the request owner
	StatusExpired    Status = "expired"    // Aged out by the expiry sweep
	StatusSuperseded Status = "superseded" // Invalidated because a sibling quote won or the request was cancelled
)

// Quote is an agent's priced offer against a freight request
type Quote struct {
	ID               uuid.UUID
	FreightRequestID uuid.UUID
	AgentID          uuid.UUID

	Price    float64
	Currency string
	Message  string

	EstimatedPickupAt   *time.Time
	EstimatedDeliveryAt *time.Time

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal reports whether the quote can no longer change state.
// Pending is the only actionable state.
func (s Status) IsTerminal() bool {
	return s != StatusPending
}
