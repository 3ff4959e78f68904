package flock

import (
	"strings"
	"time"

	"github.com/mrz1836/flock/internal/errors"
)

// Mode selects the kind of lock operation.
type Mode int

// Lock modes. Exclusive is the zero value and the command-line default.
const (
	Exclusive Mode = iota
	Shared
	Unlock
)

// String returns the mode's canonical name.
func (m Mode) String() string {
	switch m {
	case Exclusive:
		return "exclusive"
	case Shared:
		return "shared"
	case Unlock:
		return "unlock"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
//nolint:recvcheck // UnmarshalText requires pointer receiver
func (m *Mode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "exclusive", "ex":
		*m = Exclusive
	case "shared", "sh":
		*m = Shared
	case "unlock", "un":
		*m = Unlock
	default:
		return errors.Wrapf(errors.ErrInvalidMode, "%q", string(text))
	}
	return nil
}

// Request describes one acquisition attempt. It is not modified by Acquire.
type Request struct {
	// Mode is the lock operation to perform.
	Mode Mode
	// NonBlocking fails with ErrWouldBlock instead of waiting.
	NonBlocking bool
	// Bounded enables Timeout. Without it a blocking request waits forever.
	Bounded bool
	// Timeout is the wall-clock wait bound. Zero means a single attempt.
	Timeout time.Duration
}
