package hook

import (
	"context"

	"github.com/xraph/qyu/ratelimit"
)

// Funcs adapts plain closures into a Hook. Nil fields are no-ops.
type Funcs struct {
	// HookName labels the hook in logs. Defaults to "funcs".
	HookName string

	Done   func(jobID int64, result any)
	Failed func(jobID int64, err error)
	Drain  func()
	Stats  func(s ratelimit.Stats)
}

// Name implements Hook.
func (f *Funcs) Name() string {
	if f.HookName != "" {
		return f.HookName
	}
	return "funcs"
}

// OnJobDone implements JobDone.
func (f *Funcs) OnJobDone(_ context.Context, jobID int64, result any) error {
	if f.Done != nil {
		f.Done(jobID, result)
	}
	return nil
}

// OnJobFailed implements JobFailed.
func (f *Funcs) OnJobFailed(_ context.Context, jobID int64, err error) error {
	if f.Failed != nil {
		f.Failed(jobID, err)
	}
	return nil
}

// OnDrain implements Drain.
func (f *Funcs) OnDrain(_ context.Context) error {
	if f.Drain != nil {
		f.Drain()
	}
	return nil
}

// OnStats implements Stats.
func (f *Funcs) OnStats(_ context.Context, s ratelimit.Stats) error {
	if f.Stats != nil {
		f.Stats(s)
	}
	return nil
}
