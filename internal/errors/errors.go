// Package errors provides centralized error handling for flock.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for error categorization.
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrUsage indicates the command line could not be understood.
	ErrUsage = errors.New("usage error")

	// ErrBadNumber indicates the single positional argument is not a descriptor number.
	ErrBadNumber = errors.New("bad number")

	// ErrInvalidTimeout indicates a wait bound that is not seconds[.fraction].
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrInvalidMode indicates an unknown lock mode name.
	ErrInvalidMode = errors.New("invalid lock mode")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrOpenFailed indicates the lock file could not be opened or created.
	ErrOpenFailed = errors.New("cannot open lock file")

	// ErrWouldBlock indicates a non-blocking lock request was denied because
	// another holder has a conflicting lock.
	ErrWouldBlock = errors.New("lock is held elsewhere")

	// ErrLockTimeout indicates a file lock could not be acquired within the timeout period.
	ErrLockTimeout = errors.New("lock acquisition timeout")

	// ErrLockResources indicates the kernel ran out of lock table entries or memory.
	ErrLockResources = errors.New("lock resources exhausted")

	// ErrLockFailed indicates the lock call failed for any other reason,
	// typically an invalid descriptor.
	ErrLockFailed = errors.New("lock failed")

	// ErrCommandUnavailable indicates the command is missing or not executable.
	ErrCommandUnavailable = errors.New("command unavailable")

	// ErrOutOfMemory indicates the command could not be started for lack of memory.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrForkFailed indicates a child process could not be created.
	ErrForkFailed = errors.New("fork failed")

	// ErrUnexpectedStatus indicates the child ended without exiting or being
	// killed by a signal.
	ErrUnexpectedStatus = errors.New("unexpected wait status")
)

// Wrap adds context to errors at package boundaries.
// It returns nil if err is nil, allowing for safe inline usage.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// marked attaches a sentinel to an error without changing its message.
type marked struct {
	err  error
	kind error
}

func (m *marked) Error() string { return m.err.Error() }

func (m *marked) Unwrap() []error { return []error{m.err, m.kind} }

// Mark returns an error that prints like err but also matches kind with
// errors.Is. It returns nil if err is nil.
//
// This keeps user-facing lines in the classic "flock: file: reason" shape
// while callers still branch on sentinels:
//
//	return errors.Mark(errno, errors.ErrLockFailed)
func Mark(err, kind error) error {
	if err == nil {
		return nil
	}
	return &marked{err: err, kind: kind}
}

// ExitCodeError carries an explicit process exit status.
// Err may be nil when the status is the whole story, e.g. a child that exited 7.
type ExitCodeError struct {
	Code int
	Err  error
}

// NewExitCodeError wraps err with the given exit status.
func NewExitCodeError(code int, err error) *ExitCodeError {
	return &ExitCodeError{Code: code, Err: err}
}

// Error implements the error interface.
func (e *ExitCodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// ExitCode reports the status carried by err, if any.
func ExitCode(err error) (int, bool) {
	var e *ExitCodeError
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// IsSilent reports whether err should end the process without a message.
// Contention failures stay quiet so scripts can branch on status 1, and a
// bare exit status has nothing left to say.
func IsSilent(err error) bool {
	if errors.Is(err, ErrWouldBlock) || errors.Is(err, ErrLockTimeout) {
		return true
	}
	var e *ExitCodeError
	return errors.As(err, &e) && e.Err == nil
}
