package request

import "errors"

var (
	ErrRequestNotFound         = errors.New("freight request not found")
	ErrInvalidStatusTransition = errors.New("invalid freight request status transition")
	ErrRequestNotActive        = errors.New("freight request is not open for quotes")
	ErrRequestNotDeletable     = errors.New("only draft freight requests can be deleted")
	ErrNotOwner                = errors.New("actor does not own this freight request")
)
