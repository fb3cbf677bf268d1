package client

import "fmt"

// Kind classifies request failures so callers can pattern-match instead of
// probing error shapes.
type Kind int

const (
	// KindUnknown covers failures that fit no other bucket
	// (marshalling, malformed response bodies)
	KindUnknown Kind = iota
	// KindNetwork means the request never reached the backend
	KindNetwork
	// KindTimeout means the request exceeded the client deadline
	KindTimeout
	// KindHTTP means the backend answered with a non-2xx status
	KindHTTP
)

// Error is the failure type returned by every client operation
type Error struct {
	Kind    Kind
	Status  int               // HTTP status, set for KindHTTP
	Message string            // backend-provided message, if any
	Fields  map[string]string // backend field validation errors, if any
	cause   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNetwork:
		return fmt.Sprintf("request failed: %v", e.cause)
	case KindTimeout:
		return fmt.Sprintf("request timed out: %v", e.cause)
	case KindHTTP:
		if e.Message != "" {
			return fmt.Sprintf("request failed (status %d): %s", e.Status, e.Message)
		}
		return fmt.Sprintf("request failed (status %d)", e.Status)
	default:
		return fmt.Sprintf("request failed: %v", e.cause)
	}
}

func (e *Error) Unwrap() error {
	return e.cause
}

// AsError returns err as a *client.Error when possible
func AsError(err error) (*Error, bool) {
	cerr, ok := err.(*Error)
	return cerr, ok
}
