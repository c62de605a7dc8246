package middleware

import (
	"context"
	"time"

	"github.com/dagerber/spring-cloud-commons/message"
)

type result struct {
	resp *message.Response
	err  error
}

// TimeoutMiddleware bounds the whole invocation, retries and backoff
// included. The deadline propagates through ctx, so in-flight transport I/O
// and backoff sleeps are cancelled too.
func TimeoutMiddleware(timeout time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *message.Request) (*message.Response, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			done := make(chan result, 1)
			go func() {
				resp, err := next(ctx, req)
				done <- result{resp, err}
			}()

			select {
			case r := <-done:
				return r.resp, r.err
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
}
