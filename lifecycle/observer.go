// Package lifecycle notifies observers about logical invocations of the
// load-balanced client: one start event before the first attempt, one
// completion event when the invocation ends. Observers see logical requests,
// never individual retry attempts.
package lifecycle

import (
	"github.com/dagerber/spring-cloud-commons/message"
	"github.com/dagerber/spring-cloud-commons/registry"
)

// Status is the terminal state of an invocation.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailed
)

func (s Status) String() string {
	if s == StatusSuccess {
		return "SUCCESS"
	}
	return "FAILED"
}

// StartEvent is delivered exactly once per invocation, before the first
// attempt, carrying the instance bound for that attempt.
type StartEvent struct {
	ServiceName string
	Request     *message.Request
	Instance    *registry.ServiceInstance
}

// CompletionEvent is delivered exactly once per invocation, after the
// terminal outcome. On success Response is set; on failure Err holds the
// last underlying cause. Instance is the endpoint of the final attempt.
// The event is immutable once constructed.
type CompletionEvent struct {
	Status      Status
	ServiceName string
	Response    *message.Response
	Err         error
	Instance    *registry.ServiceInstance
}

// Observer receives lifecycle callbacks. Supports is the capability filter:
// the registry asks it once per invocation, and only supporting observers
// are notified for that invocation.
//
// Observer failures (panics) are isolated by the notifier — they are logged
// and never reach the response path.
type Observer interface {
	Supports(serviceName string) bool
	OnStart(e StartEvent)
	OnComplete(e CompletionEvent)
}
