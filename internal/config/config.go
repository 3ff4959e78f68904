// Package config holds the settings of one flock invocation.
//
// Sources, highest precedence first:
//  1. Command-line flags bound through viper
//  2. The SHELL environment variable (command.shell only)
//  3. Built-in defaults
//
// IMPORTANT: This package may import internal/constants, internal/errors and
// internal/flock (for the lock mode type), but no other internal packages.
package config

import (
	"time"

	"github.com/mrz1836/flock/internal/flock"
)

// Config is the root configuration structure for flock.
type Config struct {
	// Lock controls how the lock is requested.
	Lock LockConfig `mapstructure:"lock"`

	// Command controls how the command is run while the lock is held.
	Command CommandConfig `mapstructure:"command"`

	// Log controls diagnostic logging.
	Log LogConfig `mapstructure:"log"`
}

// LockConfig contains the lock request settings.
type LockConfig struct {
	// Mode is shared, exclusive or unlock.
	Mode flock.Mode `mapstructure:"mode"`

	// NonBlocking fails at once instead of waiting (-n).
	NonBlocking bool `mapstructure:"nonblock"`

	// Timeout bounds the wait (-w). Unset means wait forever.
	Timeout Timeout `mapstructure:"timeout"`

	// RetryInterval is the delay between attempts of a bounded wait.
	RetryInterval time.Duration `mapstructure:"retry_interval"`

	// Close closes the lock descriptor in the command before it runs (-o).
	Close bool `mapstructure:"close"`
}

// Request converts the settings into a lock request.
func (c LockConfig) Request() flock.Request {
	return flock.Request{
		Mode:        c.Mode,
		NonBlocking: c.NonBlocking,
		Bounded:     c.Timeout.IsSet(),
		Timeout:     c.Timeout.Duration(),
	}
}

// CommandConfig contains the command execution settings.
type CommandConfig struct {
	// Shell runs -c command strings.
	Shell string `mapstructure:"shell"`
}

// LogConfig contains the logging settings.
type LogConfig struct {
	// Verbose enables debug-level logging.
	Verbose bool `mapstructure:"verbose"`

	// Quiet limits logging to errors.
	Quiet bool `mapstructure:"quiet"`

	// File is an optional rotating log file.
	File string `mapstructure:"file"`
}
