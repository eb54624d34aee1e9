package tasks

import (
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type config struct {
	logger    *zap.Logger
	rateLimit float64
	rateBurst int
}

func defaultConfig() config {
	return config{logger: zap.NewNop()}
}

// newRateLimiter builds the admission rate limiter, or nil when unlimited.
func (c config) newRateLimiter() *rate.Limiter {
	if c.rateLimit <= 0 {
		return nil
	}
	burst := c.rateBurst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(c.rateLimit), burst)
}

// Option configures a Limiter, Runner, or TaskQueue.
type Option func(*config)

// WithLogger sets the logger for scheduler events. The default is a no-op
// logger. Panics if logger is nil.
func WithLogger(logger *zap.Logger) Option {
	if logger == nil {
		panic("tasks: WithLogger requires a non-nil logger")
	}
	return func(c *config) {
		c.logger = logger
	}
}

// WithRateLimit caps admissions at perSecond items with the given burst.
// A burst below 1 is raised to 1; a rate of zero disables rate limiting.
// Panics if perSecond is negative.
func WithRateLimit(perSecond float64, burst int) Option {
	if perSecond < 0 {
		panic("tasks: WithRateLimit requires a non-negative rate")
	}
	return func(c *config) {
		c.rateLimit = perSecond
		c.rateBurst = burst
	}
}
