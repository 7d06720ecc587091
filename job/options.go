package job

// Options configures per-job behavior. Today that is only the selection
// priority; the struct form matches how new knobs are added.
type Options struct {
	// Priority determines dequeue ordering: 1 is selected first, 10 last.
	Priority int
}

// DefaultOptions returns Options with the default (lowest) priority.
func DefaultOptions() Options {
	return Options{Priority: PriorityDefault}
}

// Option is a functional option applied at Push time.
type Option func(*Options)

// WithPriority sets the job priority. Valid values are 1 (highest)
// through 10 (lowest); anything else is rejected by Push.
func WithPriority(p int) Option {
	return func(o *Options) {
		o.Priority = p
	}
}
