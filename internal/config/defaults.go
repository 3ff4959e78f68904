package config

import (
	"github.com/spf13/viper"

	"github.com/mrz1836/flock/internal/constants"
	"github.com/mrz1836/flock/internal/flock"
)

// DefaultConfig returns the settings used when nothing is specified:
// an exclusive, blocking, unbounded lock and /bin/sh for -c.
func DefaultConfig() *Config {
	return &Config{
		Lock: LockConfig{
			Mode:          flock.Exclusive,
			RetryInterval: constants.LockRetryInterval,
		},
		Command: CommandConfig{
			Shell: constants.DefaultShell,
		},
	}
}

// setDefaults registers DefaultConfig's values with v.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("lock.mode", defaults.Lock.Mode.String())
	v.SetDefault("lock.nonblock", defaults.Lock.NonBlocking)
	v.SetDefault("lock.retry_interval", defaults.Lock.RetryInterval)
	v.SetDefault("lock.close", defaults.Lock.Close)
	v.SetDefault("command.shell", defaults.Command.Shell)
	v.SetDefault("log.verbose", false)
	v.SetDefault("log.quiet", false)
	v.SetDefault("log.file", "")
}
