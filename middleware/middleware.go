// Package middleware wraps the client's entry point with cross-cutting
// concerns: logging, timeouts, rate limiting. Retry is deliberately not a
// middleware — it needs to re-select instances between attempts, so it lives
// inside the client itself.
package middleware

import (
	"context"

	"github.com/dagerber/spring-cloud-commons/message"
)

type HandlerFunc func(ctx context.Context, req *message.Request) (*message.Response, error)

type Middleware func(next HandlerFunc) HandlerFunc

// Chain composes middlewares so the first one listed is the outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
