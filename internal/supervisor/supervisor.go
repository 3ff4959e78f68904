//go:build unix

package supervisor

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/mrz1836/flock/internal/constants"
	"github.com/mrz1836/flock/internal/errors"
	"github.com/mrz1836/flock/internal/logging"
)

// Supervisor starts one command and waits for it.
type Supervisor struct {
	logger zerolog.Logger

	// Stdin, Stdout and Stderr are handed to the child. *os.File values are
	// passed through as descriptors.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a Supervisor wired to the process's standard streams.
func New(logger zerolog.Logger) *Supervisor {
	return &Supervisor{
		logger: logger,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run starts cmd while fd stays locked in this process and returns the
// status to exit with.
//
// A nil cmd returns ExitSuccess: the lock lives on the open file description
// and goes away when the process (or the last sharing process) exits.
//
// With closeBeforeExec the child does not get fd; otherwise it inherits fd
// under the same number. The child always runs to completion. An executable
// file the kernel refuses with ENOEXEC is run once more through /bin/sh, the
// way execvp does. Any other start failure is reported once and never
// retried; the returned status is then EX_UNAVAILABLE or EX_OSERR. When err is non-nil the returned status is
// still the one to exit with.
func (s *Supervisor) Run(fd int, cmd *Command, closeBeforeExec bool) (int, error) {
	if cmd == nil {
		return constants.ExitSuccess, nil
	}

	if err := setInheritable(fd, !closeBeforeExec); err != nil {
		return constants.ExitOSErr, errors.Wrapf(err, "fd %d", fd)
	}

	child := s.command(cmd.Name(), cmd.Args[1:]...)
	err := child.Start()
	if stderrors.Is(err, syscall.ENOEXEC) {
		// An executable file without a recognized header is a shell script.
		s.logger.Debug().
			Str("command", logging.SafeValue("command", cmd.String())).
			Msg("no executable header, running with " + constants.DefaultShell)
		child = s.command(constants.DefaultShell, append([]string{child.Path}, cmd.Args[1:]...)...)
		err = child.Start()
	}
	if err != nil {
		return classifyStart(cmd, err)
	}

	log := s.logger.With().Int("pid", child.Process.Pid).Logger()
	log.Debug().
		Str("command", logging.SafeValue("command", cmd.String())).
		Bool("inherits_lock_fd", !closeBeforeExec).
		Msg("command started")

	waitErr := child.Wait()

	var exitErr *exec.ExitError
	if waitErr != nil && !stderrors.As(waitErr, &exitErr) {
		// The child ran but stdio copying failed; its status still counts.
		log.Warn().Err(waitErr).Msg("command i/o failed")
	}

	status, err := ExitStatus(child.ProcessState)
	log.Debug().Int("status", status).Msg("command finished")
	return status, err
}

func (s *Supervisor) command(name string, args ...string) *exec.Cmd {
	//nolint:gosec,noctx // G204: running the user's command is the point; it must not be canceled
	child := exec.Command(name, args...)
	child.Stdin = s.Stdin
	child.Stdout = s.Stdout
	child.Stderr = s.Stderr
	return child
}

// classifyStart maps a failed Start to a status and an error that prints as
// "<command>: <reason>" (or "fork: <reason>").
func classifyStart(cmd *Command, err error) (int, error) {
	reason := err

	var execErr *exec.Error
	var pathErr *os.PathError
	switch {
	case stderrors.As(err, &execErr):
		reason = execErr.Err
	case stderrors.As(err, &pathErr):
		reason = pathErr.Err
	}

	var errno syscall.Errno
	if stderrors.As(reason, &errno) {
		switch errno {
		case syscall.ENOMEM:
			return constants.ExitOSErr, errors.Mark(
				fmt.Errorf("%s: %w", cmd.Name(), reason), errors.ErrOutOfMemory)
		case syscall.EAGAIN:
			return constants.ExitOSErr, errors.Mark(
				fmt.Errorf("fork: %w", reason), errors.ErrForkFailed)
		}
	}

	return constants.ExitUnavailable, errors.Mark(
		fmt.Errorf("%s: %w", cmd.Name(), reason), errors.ErrCommandUnavailable)
}
