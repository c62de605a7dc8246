// Package client implements the load-balanced retry controller: resolve a
// logical service name to an instance, run attempts against it under the
// service's retry policy, and keep lifecycle bookkeeping exact — one start
// event and one completion event per logical invocation, no matter how many
// attempts run or which exit path is taken.
package client

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dagerber/spring-cloud-commons/lifecycle"
	"github.com/dagerber/spring-cloud-commons/message"
	"github.com/dagerber/spring-cloud-commons/middleware"
	"github.com/dagerber/spring-cloud-commons/registry"
	"github.com/dagerber/spring-cloud-commons/retry"
	"github.com/dagerber/spring-cloud-commons/selector"
	"github.com/dagerber/spring-cloud-commons/transport"
)

// LoadBalancedClient dispatches requests to logical services. Safe for
// concurrent use; each invocation owns its retry state exclusively.
type LoadBalancedClient struct {
	selector     selector.Selector
	executor     transport.Executor
	factory      retry.Factory
	observers    *lifecycle.Registry
	chain        middleware.Middleware
	logger       *zap.Logger
	retryEnabled bool
}

type Option func(*LoadBalancedClient)

// WithExecutor replaces the default HTTP executor.
func WithExecutor(e transport.Executor) Option {
	return func(c *LoadBalancedClient) { c.executor = e }
}

// WithFactory sets the per-service retry/backoff policy source. Without it
// no service is ever retried.
func WithFactory(f retry.Factory) Option {
	return func(c *LoadBalancedClient) { c.factory = f }
}

// WithObservers sets the lifecycle observer registry.
func WithObservers(r *lifecycle.Registry) Option {
	return func(c *LoadBalancedClient) { c.observers = r }
}

// WithMiddleware wraps Execute with the given middlewares, first listed
// outermost.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(c *LoadBalancedClient) { c.chain = middleware.Chain(mws...) }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *LoadBalancedClient) { c.logger = l }
}

// WithRetryEnabled is the deployment-wide switch. When false the client
// behaves exactly as if every service had a nil retry policy: one attempt,
// no loop.
func WithRetryEnabled(enabled bool) Option {
	return func(c *LoadBalancedClient) { c.retryEnabled = enabled }
}

func New(sel selector.Selector, opts ...Option) *LoadBalancedClient {
	c := &LoadBalancedClient{
		selector:     sel,
		executor:     transport.NewHTTPExecutor(),
		factory:      retry.StaticFactory{},
		observers:    lifecycle.NewRegistry(),
		logger:       zap.NewNop(),
		retryEnabled: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute dispatches one logical request to the named service, selecting the
// first instance via the configured selector.
func (c *LoadBalancedClient) Execute(ctx context.Context, serviceName string, req *message.Request) (*message.Response, error) {
	return c.execute(ctx, serviceName, nil, req)
}

// ExecuteOn is the recovery-path entry: attempt 1 runs against the supplied
// instance instead of a fresh selection. Later retries still follow the
// policy's same-vs-next-instance decisions.
func (c *LoadBalancedClient) ExecuteOn(ctx context.Context, serviceName string, instance *registry.ServiceInstance, req *message.Request) (*message.Response, error) {
	return c.execute(ctx, serviceName, instance, req)
}

func (c *LoadBalancedClient) execute(ctx context.Context, serviceName string, bound *registry.ServiceInstance, req *message.Request) (*message.Response, error) {
	if serviceName == "" {
		return nil, ErrInvalidRequest
	}

	handler := middleware.HandlerFunc(func(ctx context.Context, req *message.Request) (*message.Response, error) {
		return c.run(ctx, serviceName, bound, req)
	})
	if c.chain != nil {
		handler = c.chain(handler)
	}
	return handler(ctx, req)
}

// run owns the attempt loop. Invariant: once the start event has fired,
// every exit path fires exactly one completion event — except cancellation
// during backoff, where the invocation never completes.
func (c *LoadBalancedClient) run(ctx context.Context, serviceName string, bound *registry.ServiceInstance, req *message.Request) (*message.Response, error) {
	policy := c.retryPolicy(serviceName)
	backoff := c.backoffPolicy(serviceName)

	rc := retry.NewContext(serviceName)
	if bound == nil {
		instance, err := c.selector.Choose(ctx, serviceName, req.Header)
		if err != nil {
			// No instance was ever bound; the invocation never started
			// from the observers' point of view.
			return nil, err
		}
		bound = instance
	}
	rc.Bind(bound)

	notifier := lifecycle.NewNotifier(c.observers.Observers(serviceName), c.logger)
	notifier.NotifyStart(lifecycle.StartEvent{
		ServiceName: serviceName,
		Request:     req,
		Instance:    rc.Instance,
	})

	for {
		rc.NextAttempt()

		resp, err := c.executor.Execute(ctx, rc.Instance, req)
		outcome := retry.SuccessOutcome(resp)
		if err != nil {
			outcome = retry.FailureOutcome(err)
		}

		if !retry.Retryable(policy, outcome) {
			rc.Record(outcome)
			if outcome.Success() {
				notifier.NotifyComplete(lifecycle.CompletionEvent{
					Status:      lifecycle.StatusSuccess,
					ServiceName: serviceName,
					Response:    resp,
					Instance:    rc.Instance,
				})
				return resp, nil
			}
			notifier.NotifyComplete(lifecycle.CompletionEvent{
				Status:      lifecycle.StatusFailed,
				ServiceName: serviceName,
				Err:         err,
				Instance:    rc.Instance,
			})
			return nil, err
		}

		// Retryable. A response with a retryable status code becomes a
		// failure outcome here, keeping the response for diagnostics.
		if outcome.Success() {
			outcome = retry.FailureOutcome(&retry.StatusError{ServiceName: serviceName, Response: resp})
		}
		rc.Record(outcome)

		switch {
		case policy.CanRetrySameInstance(rc):
			// Stay on the bound instance.
		case policy.CanRetryNextInstance(rc):
			instance, serr := c.selector.Choose(ctx, serviceName, req.Header)
			if serr != nil {
				notifier.NotifyComplete(lifecycle.CompletionEvent{
					Status:      lifecycle.StatusFailed,
					ServiceName: serviceName,
					Err:         serr,
					Instance:    rc.Instance,
				})
				return nil, serr
			}
			rc.Bind(instance)
		default:
			notifier.NotifyComplete(lifecycle.CompletionEvent{
				Status:      lifecycle.StatusFailed,
				ServiceName: serviceName,
				Err:         outcome.Err,
				Instance:    rc.Instance,
			})
			return nil, &RetryExhaustedError{
				ServiceName: serviceName,
				Attempts:    rc.Attempts,
				Err:         outcome.Err,
			}
		}

		if err := sleep(ctx, backoff.NextBackoff(rc.Attempts-1)); err != nil {
			// Cancelled mid-backoff: the invocation never completed, so no
			// completion event fires.
			return nil, err
		}
	}
}

func (c *LoadBalancedClient) retryPolicy(serviceName string) retry.Policy {
	if !c.retryEnabled {
		return nil
	}
	return c.factory.CreateRetryPolicy(serviceName)
}

func (c *LoadBalancedClient) backoffPolicy(serviceName string) retry.BackoffPolicy {
	if b := c.factory.CreateBackoffPolicy(serviceName); b != nil {
		return b
	}
	return retry.NoBackoff()
}

// sleep waits for d without holding anything other invocations could want.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
