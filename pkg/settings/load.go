package settings

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	defaultConcurrency = 4
	defaultLogLevel    = "info"

	// envPrefix scopes environment overrides, e.g. TASKQ_SCHEDULER_CONCURRENCY.
	envPrefix = "TASKQ"
)

// Load reads configuration from the yaml file at path, if any, with
// environment variables taking precedence. An empty path skips the file and
// loads from defaults and environment only. The result is validated before
// it is returned.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("scheduler.concurrency", defaultConcurrency)
	v.SetDefault("scheduler.queue_capacity", 0)
	v.SetDefault("scheduler.rate_limit", 0)
	v.SetDefault("scheduler.rate_burst", 0)
	v.SetDefault("logger.log_level", defaultLogLevel)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errors.Wrap(err, "failed to read config file")
			}
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}
