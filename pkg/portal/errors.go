package portal

import "errors"

// ErrSubmissionInFlight is returned when a submission is attempted while a
// previous one has not yet resolved. The latch guarantees at most one
// outstanding payment submission per client.
var ErrSubmissionInFlight = errors.New("a payment submission is already in flight")

// ErrNotAuthenticated is returned by authenticated calls when the session
// store holds no token.
var ErrNotAuthenticated = errors.New("not logged in")

// APIError is a request failure surfaced to the caller as a single
// human-readable message. The message comes from the backend's structured
// error body (msg, then error) or falls back to an operation-specific string.
type APIError struct {
	Status  int // zero when the request never produced an HTTP response
	Message string
	Err     error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.Err }
