package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/qyu/job"
)

// Logging returns middleware that logs job start and completion.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, e *job.Entry, next Handler) (any, error) {
		logger.Info("job started",
			slog.Int64("job_id", e.ID),
			slog.Int("priority", e.Priority),
		)

		start := time.Now()
		result, err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("job failed",
				slog.Int64("job_id", e.ID),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Info("job completed",
				slog.Int64("job_id", e.ID),
				slog.Duration("elapsed", elapsed),
			)
		}

		return result, err
	}
}
