package errors

import "errors"

// Failure kinds surfaced by service operations. Services wrap these with
// fmt.Errorf("%w: ...") so callers can match the kind with errors.Is while
// still seeing the specific cause; handlers translate each kind to an HTTP
// status.
var (
	ErrUnauthenticated  = errors.New("not authenticated")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("forbidden")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrDuplicate        = errors.New("resource already exists")
)
