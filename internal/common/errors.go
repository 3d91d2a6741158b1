package common

import "errors"

// Error taxonomy shared by every service. Handlers map these to HTTP
// status codes in one place; services wrap them with %w so callers can
// test with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrConflict        = errors.New("conflict")
	ErrInvalidInput    = errors.New("invalid input")
	ErrAlreadyDeleted  = errors.New("already deleted")
	ErrAlreadyMember   = errors.New("already a member")
	ErrNotMember       = errors.New("not a member")
	ErrInternal        = errors.New("internal error")
)

// HTTPStatus returns the status code for a taxonomy error, 500 otherwise.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrForbidden):
		return 403
	case errors.Is(err, ErrUnauthenticated):
		return 401
	case errors.Is(err, ErrConflict), errors.Is(err, ErrAlreadyMember):
		return 409
	case errors.Is(err, ErrAlreadyDeleted):
		return 410
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrNotMember):
		return 400
	default:
		return 500
	}
}
