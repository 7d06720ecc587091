package middleware

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/xraph/qyu/job"
)

// Throttle returns middleware that delays job-body execution until the
// given token-bucket limiter grants a token. It layers a sustained-rate
// clamp on top of the queue's own admission policy; the queue still
// accounts the job as in flight while it waits.
//
// Use this when job bodies hit a shared downstream resource with its own
// rate contract, independent of the queue's jobs-per-second budget.
func Throttle(limiter *rate.Limiter) Middleware {
	return func(ctx context.Context, _ *job.Entry, next Handler) (any, error) {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return next(ctx)
	}
}
