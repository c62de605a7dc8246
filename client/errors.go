package client

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidRequest is returned when the caller supplies no service name.
// Nothing runs in that case: no selection, no attempt, no lifecycle events.
var ErrInvalidRequest = errors.New("invalid request: missing service name")

// RetryExhaustedError is the terminal error once the retry budget is spent.
// Err is the failure of the final attempt; for status-code retries it is a
// *retry.StatusError still carrying the last response.
type RetryExhaustedError struct {
	ServiceName string
	Attempts    int
	Err         error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("retry budget exhausted for %q after %d attempts: %v", e.ServiceName, e.Attempts, e.Err)
}

func (e *RetryExhaustedError) Unwrap() error { return e.Err }
