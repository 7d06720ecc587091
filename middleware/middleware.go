// Package middleware provides composable middleware for job-body
// execution. Middleware wraps the body call synchronously and can modify
// execution (recover from panics, log, add tracing, throttle, etc.).
package middleware

import (
	"context"

	"github.com/xraph/qyu/job"
)

// Handler is the terminal function that executes the job body.
type Handler func(ctx context.Context) (any, error)

// Middleware wraps a Handler with cross-cutting logic. It receives the
// current context, the entry being executed, and the next handler to
// call. Middleware MUST call next to continue the chain (unless
// short-circuiting on error).
type Middleware func(ctx context.Context, e *job.Entry, next Handler) (any, error)

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(logging, recover, throttle) executes as:
//
//	logging → recover → throttle → body
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, e *job.Entry, next Handler) (any, error) {
		// Build the chain from the end backwards.
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) (any, error) {
				return mw(ctx, e, prev)
			}
		}
		return h(ctx)
	}
}
