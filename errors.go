package qyu

import "errors"

var (
	// Push argument errors.
	ErrNilJob          = errors.New("qyu: nil job body")
	ErrInvalidPriority = errors.New("qyu: priority out of range [1,10]")

	// Configuration errors.
	ErrInvalidRateLimit     = errors.New("qyu: rate limit must be positive")
	ErrInvalidStatsInterval = errors.New("qyu: stats interval must be positive")
)
