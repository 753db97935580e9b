package request

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for freight request persistence.
// Status mutations are compare-and-set: they only apply when the row still
// holds the expected current status, so racing writers lose cleanly.
type Repository interface {
	Create(ctx context.Context, req *FreightRequest) error
	GetByID(ctx context.Context, requestID uuid.UUID) (*FreightRequest, error)
	Update(ctx context.Context, req *FreightRequest) error

	// UpdateStatus transitions requestID from `from` to `to`; returns
	// ErrInvalidStatusTransition when the row is no longer in `from`.
	UpdateStatus(ctx context.Context, requestID uuid.UUID, from, to Status) error

	// CancelAssigned atomically cancels an assigned request and marks its
	// accepted quotes superseded.
	CancelAssigned(ctx context.Context, requestID uuid.UUID) error

	// DeleteDraft removes a request only while it is still a draft.
	DeleteDraft(ctx context.Context, requestID uuid.UUID) error

	List(ctx context.Context, filter *Filter) ([]*FreightRequest, int64, error)
}

// Filter represents filtering options for listing freight requests
type Filter struct {
	Status    *Status
	OwnerID   *uuid.UUID
	CargoType *CargoType

	// Substring matches against origin/destination city and country.
	Origin      string
	Destination string

	// Pagination
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
