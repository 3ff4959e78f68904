package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mrz1836/flock/internal/constants"
	"github.com/mrz1836/flock/internal/errors"
)

// Timeout is an optional lock wait bound written as seconds[.fraction].
// The zero value is unset, meaning wait forever.
//
// Timeout implements pflag.Value so -w can be bound directly, and
// encoding.TextUnmarshaler so viper settings decode into it.
//
//nolint:recvcheck // pflag.Value requires a pointer Set alongside value readers
type Timeout struct {
	d   time.Duration
	set bool
}

// NewTimeout returns a set Timeout of d.
func NewTimeout(d time.Duration) Timeout {
	return Timeout{d: d, set: true}
}

// ParseTimeout parses seconds[.fraction]. The fraction keeps at most six
// digits (microseconds); extra digits are truncated and fewer digits are
// zero-extended. Signs, whitespace, exponents and trailing garbage are
// rejected.
func ParseTimeout(s string) (Timeout, error) {
	secPart, fracPart, hasFrac := strings.Cut(s, ".")
	if secPart == "" && fracPart == "" {
		return Timeout{}, errors.Wrapf(errors.ErrInvalidTimeout, "%q", s)
	}
	if !allDigits(secPart) || (hasFrac && !allDigits(fracPart)) {
		return Timeout{}, errors.Wrapf(errors.ErrInvalidTimeout, "%q", s)
	}

	var seconds int64
	if secPart != "" {
		n, err := strconv.ParseInt(secPart, 10, 64)
		if err != nil || n > math.MaxInt64/int64(time.Second)-1 {
			return Timeout{}, errors.Wrapf(errors.ErrInvalidTimeout, "%q is out of range", s)
		}
		seconds = n
	}

	var micros int64
	if fracPart != "" {
		if len(fracPart) > constants.MaxTimeoutFractionDigits {
			fracPart = fracPart[:constants.MaxTimeoutFractionDigits]
		}
		fracPart += strings.Repeat("0", constants.MaxTimeoutFractionDigits-len(fracPart))
		// Six digits always fit.
		micros, _ = strconv.ParseInt(fracPart, 10, 64)
	}

	return NewTimeout(time.Duration(seconds)*time.Second + time.Duration(micros)*time.Microsecond), nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Duration returns the bound, or zero when unset.
func (t Timeout) Duration() time.Duration {
	return t.d
}

// IsSet reports whether a bound was given.
func (t Timeout) IsSet() bool {
	return t.set
}

// String formats the timeout as seconds with microsecond precision, or ""
// when unset.
func (t Timeout) String() string {
	if !t.set {
		return ""
	}
	sec := t.d / time.Second
	usec := (t.d % time.Second) / time.Microsecond
	return fmt.Sprintf("%d.%06d", sec, usec)
}

// Set implements pflag.Value.
func (t *Timeout) Set(s string) error {
	parsed, err := ParseTimeout(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Type implements pflag.Value.
func (t Timeout) Type() string {
	return "seconds"
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text is unset.
func (t *Timeout) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*t = Timeout{}
		return nil
	}
	return t.Set(string(text))
}
