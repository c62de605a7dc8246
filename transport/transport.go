// Package transport performs one network attempt against a concrete
// instance. It knows nothing about retries: a 503 is a perfectly good
// response here, and classifying it is the retry policy's job.
package transport

import (
	"context"

	"github.com/dagerber/spring-cloud-commons/message"
	"github.com/dagerber/spring-cloud-commons/registry"
)

// Executor is the capability the client consumes: run one attempt against
// the given instance. Transport-level failures (dial, reset, timeout) come
// back as errors; any received response comes back as a Response, whatever
// its status code.
//
// Implementations must honor ctx cancellation for in-flight I/O.
type Executor interface {
	Execute(ctx context.Context, instance *registry.ServiceInstance, req *message.Request) (*message.Response, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, instance *registry.ServiceInstance, req *message.Request) (*message.Response, error)

func (f ExecutorFunc) Execute(ctx context.Context, instance *registry.ServiceInstance, req *message.Request) (*message.Response, error) {
	return f(ctx, instance, req)
}
