package cli

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/mrz1836/flock/internal/config"
	"github.com/mrz1836/flock/internal/constants"
	"github.com/mrz1836/flock/internal/errors"
	"github.com/mrz1836/flock/internal/flock"
	"github.com/mrz1836/flock/internal/logging"
	"github.com/mrz1836/flock/internal/supervisor"
)

// runner carries one invocation from the open through the command's exit.
type runner struct {
	cfg    *config.Config
	logger zerolog.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// run opens the target, takes the lock and runs the command.
//
// A nil return means exit 0. A denied lock returns an error matching
// ErrWouldBlock or ErrLockTimeout. A command that exits non-zero returns an
// ExitCodeError without a message.
func (r *runner) run(ctx context.Context, inv *invocation) error {
	fd := inv.fd
	if inv.path != "" {
		f, err := openLockFile(inv.path)
		if err != nil {
			return err
		}
		// The lock lives as long as f stays open.
		defer func() { _ = f.Close() }()
		fd = int(f.Fd())
	}

	req := r.cfg.Lock.Request()
	log := r.logger.With().Str("target", logging.SafeValue("target", inv.label())).Str("mode", req.Mode.String()).Logger()

	acquirer := flock.NewAcquirer(
		flock.WithLogger(log),
		flock.WithRetryInterval(r.cfg.Lock.RetryInterval),
	)
	if err := acquirer.Acquire(ctx, fd, req); err != nil {
		if errors.IsSilent(err) {
			log.Debug().Err(err).Msg("lock not acquired")
			return err
		}
		return errors.Wrap(err, inv.label())
	}
	log.Debug().Msg("lock operation done")

	sup := supervisor.New(log)
	sup.Stdin = r.stdin
	sup.Stdout = r.stdout
	sup.Stderr = r.stderr

	status, err := sup.Run(fd, inv.command, r.cfg.Lock.Close)
	switch {
	case err != nil:
		return errors.NewExitCodeError(status, err)
	case status != constants.ExitSuccess:
		return errors.NewExitCodeError(status, nil)
	default:
		return nil
	}
}
