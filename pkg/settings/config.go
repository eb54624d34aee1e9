package settings

// Config holds all library configuration, grouped by concern.
type Config struct {
	Scheduler Scheduler `mapstructure:"scheduler" validate:"required"`
	Logger    Logger    `mapstructure:"logger"`
}

// Scheduler is the configuration for queue draining and admission control.
type Scheduler struct {
	// Concurrency is the number of operations allowed in flight at once.
	Concurrency int `mapstructure:"concurrency" validate:"required,gte=1"`

	// QueueCapacity bounds the task queue. Zero means unbounded.
	QueueCapacity int `mapstructure:"queue_capacity" validate:"gte=0"`

	// RateLimit caps admissions per second. Zero disables rate limiting.
	RateLimit float64 `mapstructure:"rate_limit" validate:"gte=0"`

	// RateBurst is the admission burst size when RateLimit is set.
	RateBurst int `mapstructure:"rate_burst" validate:"gte=0"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	FileLogName string `mapstructure:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAge      int    `mapstructure:"max_age" validate:"gte=0"`
	MaxSize     int    `mapstructure:"max_size" validate:"gte=0"`
	Compress    bool   `mapstructure:"compress"`
}
