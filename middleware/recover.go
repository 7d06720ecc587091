package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/xraph/qyu/job"
)

// Recover returns middleware that recovers from panics in the handler
// chain. Panics are converted to errors and logged with a stack trace,
// so a panicking body surfaces as an ordinary job failure.
func Recover(logger *slog.Logger) Middleware {
	return func(ctx context.Context, e *job.Entry, next Handler) (result any, retErr error) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error("job body panicked",
					slog.Int64("job_id", e.ID),
					slog.Any("panic", r),
					slog.String("stack", stack),
				)
				result = nil
				retErr = fmt.Errorf("panic in job %d: %v", e.ID, r)
			}
		}()
		return next(ctx)
	}
}
