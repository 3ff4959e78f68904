package cli

import (
	"context"
	stderrors "errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mrz1836/flock/internal/config"
	"github.com/mrz1836/flock/internal/constants"
	"github.com/mrz1836/flock/internal/errors"
	"github.com/mrz1836/flock/internal/flock"
)

// Options holds the parsed command-line flags.
type Options struct {
	// Mode is set by -s, -e/-x and -u. The last one given wins.
	Mode flock.Mode
	// NonBlocking fails instead of waiting (-n).
	NonBlocking bool
	// Timeout bounds the wait (-w).
	Timeout config.Timeout
	// Close keeps the lock descriptor away from the command (-o).
	Close bool
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet limits logging to errors.
	Quiet bool
	// LogFile also writes logs to a rotating file.
	LogFile string
	// Version prints the version and exits (-V).
	Version bool
}

// AddFlags registers flock's flags on cmd.
func AddFlags(cmd *cobra.Command, opts *Options) {
	cmd.SetGlobalNormalizationFunc(normalizeFlagName)

	fs := cmd.Flags()
	fs.SortFlags = false
	fs.SetInterspersed(false)

	addModeFlag(fs, &opts.Mode, flock.Shared, "shared", "s", "get a shared lock")
	addModeFlag(fs, &opts.Mode, flock.Exclusive, "exclusive", "e", "get an exclusive lock (default)")
	addModeFlag(fs, &opts.Mode, flock.Exclusive, "exclusive-x", "x", "get an exclusive lock")
	addModeFlag(fs, &opts.Mode, flock.Unlock, "unlock", "u", "remove a lock")
	_ = fs.MarkHidden("exclusive-x")

	fs.BoolVarP(&opts.NonBlocking, "nonblock", "n", false, "fail rather than wait")
	fs.VarP(&opts.Timeout, "timeout", "w", "wait for a limited amount of time")
	fs.BoolVarP(&opts.Close, "close", "o", false, "close the lock descriptor before running the command")

	fs.BoolVar(&opts.Verbose, "verbose", false, "log lock and command activity")
	fs.BoolVar(&opts.Quiet, "quiet", false, "log errors only")
	fs.StringVar(&opts.LogFile, "log-file", "", "also write logs to a rotating file")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	fs.BoolVarP(&opts.Version, "version", "V", false, "display version")
}

// normalizeFlagName maps the historical long option spellings onto the
// canonical flag names.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "nb", "nonblocking":
		name = "nonblock"
	case "wait":
		name = "timeout"
	}
	return pflag.NormalizedName(name)
}

// modeValue is a boolean-looking flag that stores its lock mode into a shared
// target, so that the last mode flag on the command line wins.
type modeValue struct {
	target *flock.Mode
	mode   flock.Mode
}

func addModeFlag(fs *pflag.FlagSet, target *flock.Mode, mode flock.Mode, name, shorthand, usage string) {
	flag := fs.VarPF(&modeValue{target: target, mode: mode}, name, shorthand, usage)
	flag.NoOptDefVal = "true"
}

func (m *modeValue) String() string {
	if m.target == nil {
		return "false"
	}
	return strconv.FormatBool(*m.target == m.mode)
}

func (m *modeValue) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if on {
		*m.target = m.mode
	}
	return nil
}

func (m *modeValue) Type() string {
	return "bool"
}

// BindFlags binds the flags to Viper keys understood by config.Load.
// The lock mode is not a single flag and is set by the caller.
func BindFlags(v *viper.Viper, cmd *cobra.Command) error {
	fs := cmd.Flags()

	bindings := []struct {
		key  string
		flag string
	}{
		{"lock.nonblock", "nonblock"},
		{"lock.timeout", "timeout"},
		{"lock.close", "close"},
		{"log.verbose", "verbose"},
		{"log.quiet", "quiet"},
		{"log.file", "log-file"},
	}
	for _, b := range bindings {
		if err := v.BindPFlag(b.key, fs.Lookup(b.flag)); err != nil {
			return err
		}
	}
	return nil
}

// ExitCodeForError returns the process exit status for err.
//
//   - nil: 0
//   - an explicit status (ExitCodeError): that status
//   - lock denied (non-blocking or timed out): 1
//   - usage errors, including cobra's flag errors: 64
//   - lock errors: 65, or 71 when the kernel is out of lock resources
//   - open failures without an explicit status: 66
//   - command cannot be executed: 69
//   - everything else: 71
func ExitCodeForError(err error) int {
	if err == nil {
		return constants.ExitSuccess
	}

	if code, ok := errors.ExitCode(err); ok {
		return code
	}

	switch {
	case stderrors.Is(err, errors.ErrWouldBlock),
		stderrors.Is(err, errors.ErrLockTimeout),
		stderrors.Is(err, context.Canceled),
		stderrors.Is(err, context.DeadlineExceeded):
		return constants.ExitLockDenied
	case stderrors.Is(err, errors.ErrUsage),
		stderrors.Is(err, errors.ErrBadNumber),
		stderrors.Is(err, errors.ErrInvalidTimeout),
		stderrors.Is(err, errors.ErrInvalidMode):
		return constants.ExitUsage
	case stderrors.Is(err, errors.ErrLockResources),
		stderrors.Is(err, errors.ErrOutOfMemory),
		stderrors.Is(err, errors.ErrForkFailed),
		stderrors.Is(err, errors.ErrUnexpectedStatus):
		return constants.ExitOSErr
	case stderrors.Is(err, errors.ErrLockFailed):
		return constants.ExitDataErr
	case stderrors.Is(err, errors.ErrOpenFailed):
		return constants.ExitNoInput
	case stderrors.Is(err, errors.ErrCommandUnavailable):
		return constants.ExitUnavailable
	}

	if isInvalidInputError(err.Error()) {
		return constants.ExitUsage
	}

	return constants.ExitOSErr
}

// isInvalidInputError checks if an error message indicates invalid user input.
// This catches Cobra's built-in flag validation errors.
func isInvalidInputError(errMsg string) bool {
	invalidInputPatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"invalid argument",
		"if any flags in the group",
		"required flag",
	}

	for _, pattern := range invalidInputPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
