package quote

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for quote persistence.
type Repository interface {
	Create(ctx context.Context, q *Quote) error
	GetByID(ctx context.Context, quoteID uuid.UUID) (*Quote, error)

	// UpdateStatus transitions quoteID from `from` to `to`; returns
	// ErrQuoteNotPending when the row is no longer in `from`.
	UpdateStatus(ctx context.Context, quoteID uuid.UUID, from, to Status) error

	// Accept runs the cross-entity acceptance transaction: the quote becomes
	// accepted, the parent request becomes assigned to the quoting agent and
	// every sibling pending quote becomes superseded. All writes commit
	// together or not at all.
	Accept(ctx context.Context, quoteID, requestID, agentID uuid.UUID) error

	// DeletePending withdraws a quote only while it is still pending.
	DeletePending(ctx context.Context, quoteID uuid.UUID) error

	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*Quote, error)
	ListByAgent(ctx context.Context, agentID uuid.UUID) ([]*Quote, error)

	// ExpirePendingBefore marks pending quotes created before the cutoff as
	// expired and reports how many rows changed.
	ExpirePendingBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
