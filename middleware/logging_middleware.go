package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dagerber/spring-cloud-commons/message"
)

// LoggingMiddleware logs every logical invocation with its duration and
// result. Attempt-level detail is the lifecycle observers' business.
func LoggingMiddleware(logger *zap.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *message.Request) (*message.Response, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", req.Path),
				zap.Duration("duration", time.Since(start)),
			}
			if err != nil {
				logger.Warn("request failed", append(fields, zap.Error(err))...)
				return resp, err
			}
			logger.Info("request completed", append(fields, zap.Int("status", resp.StatusCode))...)
			return resp, nil
		}
	}
}
