package qyu

import (
	"time"

	"github.com/xraph/qyu/ratelimit"
)

// Config holds configuration for a Queue.
type Config struct {
	// RateLimit is the maximum jobs started per rolling second.
	// ratelimit.Serial (zero) means serial mode: at most one job in
	// flight at a time.
	RateLimit int

	// StatsInterval is the cadence of throughput stats emission while
	// the queue is active.
	StatsInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults: serial mode,
// stats every 500 ms.
func DefaultConfig() Config {
	return Config{
		RateLimit:     ratelimit.Serial,
		StatsInterval: 500 * time.Millisecond,
	}
}
