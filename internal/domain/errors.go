package domain

import "errors"

// Error taxonomy shared by services and repositories. Callers classify with
// errors.Is; the HTTP layer maps each sentinel to a status code in one place.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("conflict")
	ErrUnavailable       = errors.New("service unavailable")
)
