// Package qyu provides an in-process asynchronous job queue with priority
// ordering, a jobs-per-rolling-second rate limit, and lifecycle hooks.
//
// A queue accepts jobs through Push, dispatches them highest priority
// first (FIFO within a priority) whenever the rate limiter admits another
// start, and reports completion, failure, drain, and periodic throughput
// through registered hooks.
//
// # Quick Start
//
//	q, err := qyu.New(
//	    qyu.WithRateLimit(50),
//	    qyu.WithStatsInterval(time.Second),
//	)
//
//	ticket, err := q.Push(func(ctx context.Context) (any, error) {
//	    return doWork(ctx)
//	}, job.WithPriority(3))
//
//	q.Start(ctx)
//	res, err := ticket.Wait(ctx)
//
// Without WithRateLimit the queue runs in serial mode: at most one job in
// flight at a time.
//
// # Architecture
//
// The queue owns all scheduler state and mutates it under a single lock,
// so dispatch decisions are logically single-threaded; only job bodies
// run on their own goroutines. Admission is delegated to
// ratelimit.Limiter, subscriptions to hook.Registry, and cross-cutting
// execution concerns (recovery, logging, tracing, metrics, throttling)
// to the middleware package.
package qyu
