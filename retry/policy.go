// Package retry defines the pluggable pieces of the client's retry loop:
// the per-service Policy that classifies outcomes and budgets attempts, the
// BackoffPolicy that spaces them out, the per-invocation Context, and the
// pure evaluator that ties Policy and Outcome together.
package retry

import (
	"fmt"

	"github.com/dagerber/spring-cloud-commons/message"
)

// Policy decides whether an outcome is worth retrying and whether the
// attempt budget allows it. Implementations must be safe for concurrent use;
// one Policy value may serve many invocations at once.
//
// Whether a retry stays on the bound instance or rotates to a fresh one is a
// policy decision: the controller keeps the instance while
// CanRetrySameInstance allows it, then re-selects while CanRetryNextInstance
// allows it.
type Policy interface {
	CanRetrySameInstance(rc *Context) bool
	CanRetryNextInstance(rc *Context) bool
	RetryableStatusCode(code int) bool
	RetryableError(err error) bool
}

// SimplePolicy is the stock Policy: a total attempt budget, a same-instance
// retry budget, and a fixed set of retryable status codes.
type SimplePolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	// Values below 1 behave as 1.
	MaxAttempts int

	// SameInstanceRetries is how many retries stay on the bound instance
	// before the controller rotates to a freshly selected one. 0 rotates on
	// every retry.
	SameInstanceRetries int

	// RetryableStatusCodes lists response codes to treat as transient
	// failures, e.g. 502, 503.
	RetryableStatusCodes []int

	// RetryableErrs optionally narrows which errors are transient. Nil
	// means every transport error is.
	RetryableErrs func(err error) bool
}

func (p *SimplePolicy) maxAttempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

func (p *SimplePolicy) CanRetrySameInstance(rc *Context) bool {
	return rc.Attempts < p.maxAttempts() && rc.InstanceAttempts <= p.SameInstanceRetries
}

func (p *SimplePolicy) CanRetryNextInstance(rc *Context) bool {
	return rc.Attempts < p.maxAttempts()
}

func (p *SimplePolicy) RetryableStatusCode(code int) bool {
	for _, c := range p.RetryableStatusCodes {
		if c == code {
			return true
		}
	}
	return false
}

func (p *SimplePolicy) RetryableError(err error) bool {
	if err == nil {
		return false
	}
	if p.RetryableErrs != nil {
		return p.RetryableErrs(err)
	}
	return true
}

// StatusError marks a response whose status code the active policy
// classified as retryable. It keeps the response so that diagnostics on an
// exhausted invocation can still see what the last instance answered.
type StatusError struct {
	ServiceName string
	Response    *message.Response
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("service %q answered retryable status %d", e.ServiceName, e.Response.StatusCode)
}
