//go:build unix

package flock

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/mrz1836/flock/internal/clock"
	"github.com/mrz1836/flock/internal/constants"
	"github.com/mrz1836/flock/internal/ctxutil"
	"github.com/mrz1836/flock/internal/errors"
)

// Acquirer takes advisory locks, optionally bounded by a wait timeout.
type Acquirer struct {
	logger        zerolog.Logger
	clock         clock.Clock
	retryInterval time.Duration
}

// Option configures an Acquirer.
type Option func(*Acquirer)

// WithLogger sets the logger used for wait diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Acquirer) {
		a.logger = logger
	}
}

// WithClock replaces the clock used to measure waits.
func WithClock(c clock.Clock) Option {
	return func(a *Acquirer) {
		a.clock = c
	}
}

// WithRetryInterval sets the delay between attempts of a bounded wait.
// Non-positive values are ignored.
func WithRetryInterval(d time.Duration) Option {
	return func(a *Acquirer) {
		if d > 0 {
			a.retryInterval = d
		}
	}
}

// NewAcquirer creates an Acquirer with the given options.
func NewAcquirer(opts ...Option) *Acquirer {
	a := &Acquirer{
		logger:        zerolog.Nop(),
		clock:         clock.RealClock{},
		retryInterval: constants.LockRetryInterval,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Acquire performs req on fd.
//
// Unlock and non-blocking requests make exactly one flock(2) call. A blocking
// request without a bound and without a cancelable ctx waits in the kernel.
// Everything else goes through a bounded wait: a timeout guard is armed right
// before the first attempt and released on every return path, and the guard's
// expiry is only observed between attempts.
//
// Errors match ErrWouldBlock, ErrLockTimeout, ErrLockResources, ErrLockFailed
// or, for a canceled ctx, the context error.
func (a *Acquirer) Acquire(ctx context.Context, fd int, req Request) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	log := a.logger.With().Int("fd", fd).Str("mode", req.Mode.String()).Logger()

	switch {
	case req.Mode == Unlock:
		log.Debug().Msg("releasing lock")
		return Release(fd)
	case req.NonBlocking:
		log.Debug().Msg("trying lock without waiting")
		return Flock(fd, req.Mode, true)
	case !req.Bounded && !ctxutil.Cancelable(ctx):
		log.Debug().Msg("waiting for lock")
		return Flock(fd, req.Mode, false)
	}

	guardCtx, release := armTimeout(ctx, req)
	defer release()

	return a.wait(guardCtx, fd, req, log)
}

// armTimeout is the timeout guard for one bounded wait. The returned release
// func stops the guard's timer and must be called on every path.
func armTimeout(ctx context.Context, req Request) (context.Context, context.CancelFunc) {
	if !req.Bounded {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, req.Timeout)
}

// wait retries a non-blocking request until it succeeds, fails for a reason
// other than contention, or ctx ends.
func (a *Acquirer) wait(ctx context.Context, fd int, req Request, log zerolog.Logger) error {
	start := a.clock.Now()
	if req.Bounded {
		log.Debug().Dur("timeout", req.Timeout).Msg("waiting for lock with timeout")
	} else {
		log.Debug().Msg("waiting for lock")
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for attempt := 1; ; attempt++ {
		err := Flock(fd, req.Mode, true)
		if err == nil {
			if attempt > 1 {
				log.Debug().
					Int("attempts", attempt).
					Dur("elapsed", clock.Elapsed(a.clock, start)).
					Str("waited", humanize.RelTime(start, a.clock.Now(), "", "")).
					Msg("lock acquired")
			}
			return nil
		}
		if !stderrors.Is(err, errors.ErrWouldBlock) {
			return err
		}

		if timer == nil {
			timer = time.NewTimer(a.retryInterval)
		} else {
			timer.Reset(a.retryInterval)
		}

		select {
		case <-ctx.Done():
			if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
				log.Debug().Int("attempts", attempt).Msg("lock wait timed out")
				return errors.Wrapf(errors.ErrLockTimeout, "gave up after %s",
					humanize.RelTime(start, a.clock.Now(), "", ""))
			}
			return ctx.Err()
		case <-timer.C:
		}
	}
}
