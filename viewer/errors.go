package viewer

import "github.com/pkg/errors"

// Typed failures mapped from the document gate. None of these are retried
// automatically; the caller must explicitly reopen the viewer.
var (
	ErrUnauthorized    = errors.New("viewer: credentials missing or invalid")
	ErrNotPurchased    = errors.New("viewer: content not purchased")
	ErrNotFound        = errors.New("viewer: content not found")
	ErrBadRequest      = errors.New("viewer: malformed request")
	ErrRetrievalFailed = errors.New("viewer: document retrieval failed")

	// ErrHandleClosed is returned when a released handle is used.
	ErrHandleClosed = errors.New("viewer: handle closed")
)
