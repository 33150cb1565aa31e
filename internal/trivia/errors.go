package trivia

import "errors"

// Domain error taxonomy. Every store failure is translated into one of these
// at the service boundary; the HTTP layer maps them onto the JSON envelope and
// nothing below it ever reaches the wire.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrNotFound      = errors.New("resource not found")
	ErrWriteRejected = errors.New("write rejected")
	ErrUnprocessable = errors.New("unprocessable")
)

// taxonomyError pairs a taxonomy sentinel with its underlying cause. errors.Is
// matches the sentinel while the cause stays available for server-side logs.
type taxonomyError struct {
	kind  error
	cause error
}

func (e *taxonomyError) Error() string {
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *taxonomyError) Is(target error) bool {
	return target == e.kind
}

func (e *taxonomyError) Unwrap() error {
	return e.cause
}

// classify wraps cause under the given taxonomy kind.
func classify(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return &taxonomyError{kind: kind, cause: cause}
}
