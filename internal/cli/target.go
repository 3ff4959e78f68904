package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"strconv"
	"syscall"

	"github.com/mrz1836/flock/internal/constants"
	"github.com/mrz1836/flock/internal/errors"
	"github.com/mrz1836/flock/internal/supervisor"
)

// invocation is what the positional arguments ask for: a descriptor to lock
// (fd form), or a file to open and lock plus a command to run (file form).
type invocation struct {
	fd      int
	path    string
	command *supervisor.Command
}

// label names the target in error lines: the path, or the fd number.
func (i *invocation) label() string {
	if i.path != "" {
		return i.path
	}
	return strconv.Itoa(i.fd)
}

// isCommandFlag reports whether arg asks for the shell form. It is only
// recognized directly after the file.
func isCommandFlag(arg string) bool {
	return arg == "-c" || arg == "--command"
}

// parseInvocation interprets the arguments left after flag parsing.
//
//	fd#                    lock an inherited descriptor, no command
//	file command [arg...]  lock file and run command
//	file -c string         lock file and run string with shell -c
func parseInvocation(args []string, shell string) (*invocation, error) {
	switch len(args) {
	case 0:
		return nil, usageError(stderrors.New("not enough arguments"))
	case 1:
		fd, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, errors.Mark(fmt.Errorf("bad number: %s", args[0]), errors.ErrBadNumber)
		}
		return &invocation{fd: fd}, nil
	}

	inv := &invocation{fd: -1, path: args[0]}

	if isCommandFlag(args[1]) {
		if len(args) != 3 {
			return nil, errors.Mark(
				fmt.Errorf("%s requires exactly one command argument", args[1]), errors.ErrUsage)
		}
		inv.command = supervisor.ShellCommand(shell, args[2])
		return inv, nil
	}

	cmd, err := supervisor.NewCommand(args[1:])
	if err != nil {
		return nil, err
	}
	inv.command = cmd
	return inv, nil
}

// openLockFile opens path read-only, creating it if needed. The file is
// never truncated. Failures carry the exit status for the errno.
func openLockFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, constants.LockFilePerm) // #nosec G302 G304 -- lock file named on the command line
	if err == nil {
		return f, nil
	}

	reason := err
	var pathErr *os.PathError
	if stderrors.As(err, &pathErr) {
		reason = pathErr.Err
	}

	return nil, errors.NewExitCodeError(
		openFailureStatus(reason),
		errors.Mark(fmt.Errorf("cannot open lock file %s: %w", path, reason), errors.ErrOpenFailed),
	)
}

// openFailureStatus maps an open(2) errno to an exit status.
func openFailureStatus(err error) int {
	var errno syscall.Errno
	if !stderrors.As(err, &errno) {
		return constants.ExitNoInput
	}

	switch errno {
	case syscall.ENOMEM, syscall.EMFILE, syscall.ENFILE:
		return constants.ExitOSErr
	case syscall.EROFS, syscall.ENOSPC:
		return constants.ExitCantCreat
	default:
		return constants.ExitNoInput
	}
}
