// Package constants provides centralized constant values used throughout flock.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// ProgramName is the name used in usage text and in every error line.
const ProgramName = "flock"

// Lock file handling.
const (
	// LockFilePerm is the permission used when the lock file has to be created.
	// The process umask still applies.
	LockFilePerm = 0o666

	// LockRetryInterval is the delay between non-blocking attempts while a
	// bounded wait is in progress.
	LockRetryInterval = 50 * time.Millisecond

	// MaxTimeoutFractionDigits is the number of fractional digits honored in a
	// wait bound. Extra digits are discarded, i.e. microsecond resolution.
	MaxTimeoutFractionDigits = 6
)

// Command execution.
const (
	// DefaultShell runs -c command strings when SHELL is unset or empty.
	DefaultShell = "/bin/sh"

	// ShellEnvVar names the environment variable consulted for the -c form.
	ShellEnvVar = "SHELL"

	// SignalExitBase is added to the signal number of a child killed by a signal.
	SignalExitBase = 128
)

// Log file rotation, used only when --log-file is given.
const (
	// LogMaxSizeMB is the size at which the log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files to keep.
	LogMaxBackups = 3

	// LogMaxAgeDays is how long rotated files are kept.
	LogMaxAgeDays = 28

	// LogCompress enables gzip compression of rotated files.
	LogCompress = true
)
