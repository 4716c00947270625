package api

import "errors"

var (
	// ErrNetwork wraps any transport failure reaching the server.
	ErrNetwork = errors.New("network error - please check your connection")

	// ErrNotFound is returned when the server does not know the
	// requested booking id.
	ErrNotFound = errors.New("booking not found")

	// ErrNotOwner is the local advisory check failing before an
	// update or delete is even attempted.
	ErrNotOwner = errors.New("you can only modify your own bookings")

	// ErrUnexpected covers responses that fit no other shape.
	ErrUnexpected = errors.New("an unexpected error occurred")
)

// ServerError carries a structured error message from the server,
// surfaced to the user verbatim.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// IsRetryable reports whether re-issuing the identical request could
// plausibly succeed. Used only to decide whether to print a retry
// hint; nothing retries automatically.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrNetwork) {
		return true
	}
	var serverErr *ServerError
	return errors.As(err, &serverErr) && serverErr.Status >= 500
}
