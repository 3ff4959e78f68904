package config

import (
	"github.com/mrz1836/flock/internal/errors"
	"github.com/mrz1836/flock/internal/flock"
)

// Validate checks the configuration for invalid or inconsistent values.
//
// Validation rules:
//   - lock mode must be shared, exclusive or unlock
//   - retry interval must be positive
//   - timeout must not be negative
//   - shell must not be empty
//   - verbose and quiet are mutually exclusive
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateLockConfig(&cfg.Lock); err != nil {
		return err
	}

	if cfg.Command.Shell == "" {
		return errors.Wrap(errors.ErrUsage, "command.shell must not be empty")
	}

	if cfg.Log.Verbose && cfg.Log.Quiet {
		return errors.Wrap(errors.ErrUsage, "--verbose and --quiet are mutually exclusive")
	}

	return nil
}

func validateLockConfig(cfg *LockConfig) error {
	switch cfg.Mode {
	case flock.Exclusive, flock.Shared, flock.Unlock:
	default:
		return errors.Wrapf(errors.ErrInvalidMode, "lock.mode %d", int(cfg.Mode))
	}

	if cfg.RetryInterval <= 0 {
		return errors.Wrapf(errors.ErrUsage,
			"lock.retry_interval must be positive, got %s", cfg.RetryInterval)
	}

	if cfg.Timeout.Duration() < 0 {
		return errors.Wrapf(errors.ErrInvalidTimeout, "%s", cfg.Timeout)
	}

	return nil
}
