// Package supervisor runs the command that executes while a lock is held and
// turns its termination into a process exit status.
package supervisor

import (
	"strings"

	"github.com/mrz1836/flock/internal/errors"
)

// Command is an argv-style command line. Args[0] is the program.
type Command struct {
	Args []string
}

// NewCommand builds a Command from argv.
func NewCommand(argv []string) (*Command, error) {
	if len(argv) == 0 {
		return nil, errors.Wrap(errors.ErrUsage, "empty command")
	}
	args := make([]string, len(argv))
	copy(args, argv)
	return &Command{Args: args}, nil
}

// ShellCommand wraps script as `shell -c script`.
func ShellCommand(shell, script string) *Command {
	return &Command{Args: []string{shell, "-c", script}}
}

// Name returns the program as given on the command line.
func (c *Command) Name() string {
	return c.Args[0]
}

// String joins the argv with spaces. It is meant for logs, not for a shell.
func (c *Command) String() string {
	return strings.Join(c.Args, " ")
}
