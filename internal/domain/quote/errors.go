package quote

import "errors"

var (
	ErrQuoteNotFound   = errors.New("quote not found")
	ErrQuoteNotPending = errors.New("quote is no longer pending")
	ErrNotAuthor       = errors.New("actor is not the author of this quote")

	// ErrAcceptConflict is returned when the accept transaction could not be
	// committed. The caller may retry; no partial state was written.
	ErrAcceptConflict = errors.New("quote acceptance could not be committed")
)
