package steam

import (
	"errors"
	"fmt"
)

// ErrStreamExhausted is returned by Stream.Next after the end-of-stream page
// has already been delivered.
var ErrStreamExhausted = errors.New("review stream exhausted")

// RequestError represents a transport-level failure (non-2xx status).
// It is fatal to the run and never retried.
type RequestError struct {
	StatusCode int
	Status     string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("steam request failed: %s", e.Status)
}

// ProtocolError represents a response the API delivered successfully at the
// transport level but whose content breaks the endpoint's contract: the
// envelope reports failure, the declared record count does not match the
// payload, or a record is missing required fields.
type ProtocolError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("steam protocol error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("steam protocol error: %s", e.Reason)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}
