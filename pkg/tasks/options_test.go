package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWithLogger(t *testing.T) {
	logger := zap.NewExample()

	var cfg config
	WithLogger(logger)(&cfg)
	assert.Same(t, logger, cfg.logger)

	assert.PanicsWithValue(t, "tasks: WithLogger requires a non-nil logger", func() {
		WithLogger(nil)
	})
}

func TestWithRateLimit(t *testing.T) {
	t.Run("configures_limiter", func(t *testing.T) {
		var cfg config
		WithRateLimit(50, 10)(&cfg)
		lim := cfg.newRateLimiter()
		assert.NotNil(t, lim)
		assert.Equal(t, float64(50), float64(lim.Limit()))
		assert.Equal(t, 10, lim.Burst())
	})

	t.Run("zero_rate_disables_limiting", func(t *testing.T) {
		var cfg config
		WithRateLimit(0, 10)(&cfg)
		assert.Nil(t, cfg.newRateLimiter())
	})

	t.Run("burst_floor", func(t *testing.T) {
		var cfg config
		WithRateLimit(50, 0)(&cfg)
		lim := cfg.newRateLimiter()
		assert.Equal(t, 1, lim.Burst(), "a zero burst should be raised to one")
	})

	t.Run("negative_rate_panics", func(t *testing.T) {
		assert.PanicsWithValue(t, "tasks: WithRateLimit requires a non-negative rate", func() {
			WithRateLimit(-1, 1)
		})
	})
}
