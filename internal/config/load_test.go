package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/flock/internal/constants"
	"github.com/mrz1836/flock/internal/errors"
	"github.com/mrz1836/flock/internal/flock"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(constants.ShellEnvVar, "")

	cfg, err := Load(NewViper())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, cfg.Lock.Timeout.IsSet())
}

func TestLoad_ShellFromEnvironment(t *testing.T) {
	t.Setenv(constants.ShellEnvVar, "/bin/zsh")

	cfg, err := Load(NewViper())
	require.NoError(t, err)
	assert.Equal(t, "/bin/zsh", cfg.Command.Shell)
}

func TestLoad_Settings(t *testing.T) {
	t.Setenv(constants.ShellEnvVar, "")

	v := NewViper()
	v.Set("lock.mode", "shared")
	v.Set("lock.nonblock", true)
	v.Set("lock.timeout", "2.5")
	v.Set("lock.retry_interval", "5ms")
	v.Set("lock.close", true)
	v.Set("log.verbose", true)
	v.Set("log.file", "/tmp/flock.log")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, flock.Shared, cfg.Lock.Mode)
	assert.True(t, cfg.Lock.NonBlocking)
	assert.Equal(t, NewTimeout(2500*time.Millisecond), cfg.Lock.Timeout)
	assert.Equal(t, 5*time.Millisecond, cfg.Lock.RetryInterval)
	assert.True(t, cfg.Lock.Close)
	assert.True(t, cfg.Log.Verbose)
	assert.Equal(t, "/tmp/flock.log", cfg.Log.File)
	assert.Equal(t, constants.DefaultShell, cfg.Command.Shell)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv(constants.ShellEnvVar, "")

	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"unknown mode", "lock.mode", "sideways"},
		{"bad timeout", "lock.timeout", "later"},
		{"bad retry interval", "lock.retry_interval", "often"},
		{"zero retry interval", "lock.retry_interval", "0s"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := NewViper()
			v.Set(tc.key, tc.value)

			cfg, err := Load(v)
			require.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_DecodeErrorIsUsage(t *testing.T) {
	t.Setenv(constants.ShellEnvVar, "")

	v := NewViper()
	v.Set("lock.timeout", "later")

	_, err := Load(v)
	require.ErrorIs(t, err, errors.ErrUsage)
}

func TestLockConfig_Request(t *testing.T) {
	t.Parallel()

	unbounded := LockConfig{Mode: flock.Shared, NonBlocking: true}.Request()
	assert.Equal(t, flock.Request{Mode: flock.Shared, NonBlocking: true}, unbounded)

	bounded := LockConfig{Timeout: NewTimeout(0)}.Request()
	assert.True(t, bounded.Bounded)
	assert.Zero(t, bounded.Timeout)
}
