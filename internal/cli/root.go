// Package cli provides the command-line interface for flock.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/flock/internal/config"
	"github.com/mrz1836/flock/internal/constants"
	"github.com/mrz1836/flock/internal/errors"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the logger of the current invocation.
// Access is protected by globalLoggerMu for thread safety.
var (
	globalLogger   = zerolog.Nop() //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex    //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the logger of the current invocation. Before the root
// command has loaded its configuration it returns a logger that discards
// everything.
//
// This function is safe for concurrent use.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

func setLogger(logger zerolog.Logger) {
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	globalLogger = logger
}

// usageText is printed for -h and after command-line errors.
const usageText = `Usage:
  flock [-s|-e|-x|-u] [-n] [-w seconds] [-o] fd#
  flock [-s|-e|-x] [-n] [-w seconds] [-o] file [-c] command...

Options:
  -s, --shared              get a shared lock
  -e, -x, --exclusive       get an exclusive lock (default)
  -u, --unlock              remove a lock
  -n, --nonblock            fail rather than wait (also --nb, --nonblocking)
  -w, --timeout SECONDS     wait for a limited amount of time (also --wait)
  -o, --close               close the lock descriptor before running the command
  -c, --command STRING      run a single command string through the shell
      --verbose             log lock and command activity
      --quiet               log errors only
      --log-file PATH       also write logs to a rotating file
  -h, --help                display this text
  -V, --version             display version
`

// errShowUsage marks errors that are followed by the usage text.
var errShowUsage = stderrors.New("show usage") //nolint:gochecknoglobals // Sentinel marker

// usageError marks err as a usage error that prints the usage text.
func usageError(err error) error {
	return errors.Mark(errors.Mark(err, errors.ErrUsage), errShowUsage)
}

// newRootCmd creates and returns the flock command.
func newRootCmd(opts *Options, info BuildInfo) *cobra.Command {
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:   "flock [options] fd# | file [-c] command...",
		Short: "Manage advisory file locks from shell scripts",
		Long: `flock takes an advisory lock on a file or an inherited file descriptor.

With a file and a command, the command runs while the lock is held and its exit
status becomes flock's. With a descriptor number, the lock is taken on that
descriptor and stays until the descriptor is closed by every process sharing it.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Version {
				_, err := fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", constants.ProgramName, formatVersion(info))
				return err
			}

			if err := BindFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}
			v.Set("lock.mode", opts.Mode.String())

			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			logger := InitLogger(cfg.Log, cmd.ErrOrStderr())
			setLogger(logger)

			inv, err := parseInvocation(args, cfg.Command.Shell)
			if err != nil {
				return err
			}

			r := &runner{
				cfg:    cfg,
				logger: logger,
				stdin:  cmd.InOrStdin(),
				stdout: cmd.OutOrStdout(),
				stderr: cmd.ErrOrStderr(),
			}
			return r.run(cmd.Context(), inv)
		},
		// We print our own "flock: ..." lines and usage text.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddFlags(cmd, opts)

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		_, _ = fmt.Fprint(c.ErrOrStderr(), usageText)
	})
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		_, err := fmt.Fprint(c.ErrOrStderr(), usageText)
		return err
	})

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// reportError prints err the way flock reports failures: "flock: <reason>",
// followed by the usage text for command-line errors. Denied locks and plain
// command exit statuses print nothing.
func reportError(w io.Writer, err error) {
	if err == nil || errors.IsSilent(err) {
		return
	}

	_, _ = fmt.Fprintf(w, "%s: %s\n", constants.ProgramName, err)
	if stderrors.Is(err, errShowUsage) {
		_, _ = fmt.Fprint(w, usageText)
	}

	if message, action := errors.Actionable(err); action != "" {
		logger := GetLogger()
		logger.Debug().Str("hint", action).Msg(message)
	}
}

// Execute runs flock with the process arguments and returns the error that
// decides the exit status (see ExitCodeForError). Errors are already reported
// on stderr when Execute returns.
func Execute(ctx context.Context, info BuildInfo) error {
	opts := &Options{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(opts, info)
	err := cmd.ExecuteContext(ctx)
	reportError(cmd.ErrOrStderr(), err)
	return err
}
