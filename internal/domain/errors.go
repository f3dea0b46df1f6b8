package domain

import "errors"

// Sentinel errors shared across services and repositories. Services wrap them
// with fmt.Errorf("...: %w", err); callers match with errors.Is.
var (
	// ErrNotFound means no entity exists with the given identifier.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the requester is known but lacks the privilege
	// for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput means a required field is missing or a field value
	// is malformed. User-correctable.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyApproved means an approval was attempted on an event that
	// is already approved. The event state is left unchanged.
	ErrAlreadyApproved = errors.New("event already approved")

	// ErrUserNotFound means no user exists with the given id or email.
	ErrUserNotFound = errors.New("user not found")
)
