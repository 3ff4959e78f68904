package cli

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/flock/internal/constants"
	"github.com/mrz1836/flock/internal/errors"
)

func TestRootCmd_Help(t *testing.T) {
	t.Parallel()

	for _, arg := range []string{"-h", "--help"} {
		t.Run(arg, func(t *testing.T) {
			t.Parallel()
			res := runCLI(arg)

			require.NoError(t, res.err)
			assert.Equal(t, constants.ExitSuccess, res.code)
			assert.Empty(t, res.stdout, "usage goes to stderr")
			assert.Contains(t, res.stderr, "Usage:")
			assert.Contains(t, res.stderr, "--nonblock")
			assert.Contains(t, res.stderr, "--timeout")
			assert.Contains(t, res.stderr, "--command")
		})
	}
}

func TestRootCmd_Version(t *testing.T) {
	t.Parallel()

	for _, arg := range []string{"-V", "--version"} {
		t.Run(arg, func(t *testing.T) {
			t.Parallel()
			res := runCLI(arg)

			require.NoError(t, res.err)
			assert.Equal(t, constants.ExitSuccess, res.code)
			assert.Empty(t, res.stdout)
			assert.Equal(t, "flock test (commit: none, built: unknown)\n", res.stderr)
		})
	}
}

func TestFormatVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info BuildInfo
		want string
	}{
		{
			name: "full version info",
			info: BuildInfo{Version: "1.0.0", Commit: "abc1234", Date: "2025-01-01"},
			want: "1.0.0 (commit: abc1234, built: 2025-01-01)",
		},
		{
			name: "default dev version",
			info: BuildInfo{},
			want: "dev (commit: none, built: unknown)",
		},
		{
			name: "partial version info",
			info: BuildInfo{Version: "2.0.0-beta"},
			want: "2.0.0-beta (commit: none, built: unknown)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, formatVersion(tc.info))
		})
	}
}

func TestRootCmd_UsageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      []string
		wantText  string
		wantUsage bool
	}{
		{"no arguments", nil, "flock: not enough arguments", true},
		{"options only", []string{"-n"}, "flock: not enough arguments", true},
		{"unknown shorthand", []string{"-z", "9"}, "unknown shorthand flag: 'z'", true},
		{"unknown long flag", []string{"--frobnicate", "9"}, "unknown flag: --frobnicate", true},
		{"timeout without value", []string{"-w"}, "flag needs an argument", true},
		{"bad timeout", []string{"-w", "soon", "9"}, "invalid timeout", true},
		{"timeout with garbage", []string{"-w", "1.5s", "9"}, "invalid timeout", true},
		{"empty timeout", []string{"-w", "", "9"}, "invalid timeout", true},
		{"bad number", []string{"nine"}, "flock: bad number: nine\n", false},
		{"verbose and quiet", []string{"--verbose", "--quiet", "9"}, "verbose", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := runCLI(tc.args...)

			assert.Equal(t, constants.ExitUsage, res.code)
			assert.Contains(t, res.stderr, tc.wantText)
			if tc.wantUsage {
				assert.Contains(t, res.stderr, "Usage:")
			} else {
				assert.NotContains(t, res.stderr, "Usage:")
			}
		})
	}
}

func TestReportError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"would block", errors.ErrWouldBlock, ""},
		{"timeout", errors.Wrap(errors.ErrLockTimeout, "gave up"), ""},
		{"bare exit status", errors.NewExitCodeError(7, nil), ""},
		{"lock error", errors.Wrap(errors.ErrLockFailed, "/tmp/x.lock"), "flock: /tmp/x.lock: lock failed\n"},
		{
			"usage error",
			usageError(errors.ErrUsage),
			"flock: usage error\n" + usageText,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			reportError(&buf, tc.err)
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

// Swaps the package logger, so it must not run in parallel.
func TestReportError_LogsHintAtDebug(t *testing.T) {
	previous := GetLogger()
	t.Cleanup(func() { setLogger(previous) })

	var logs bytes.Buffer
	setLogger(InitLoggerWithWriter(true, false, &logs))

	var out bytes.Buffer
	reportError(&out, errors.Wrap(errors.ErrLockFailed, "/tmp/x.lock"))

	assert.Equal(t, "flock: /tmp/x.lock: lock failed\n", out.String())
	assert.Contains(t, logs.String(), `"hint":"Make sure the descriptor is open in this shell."`)
	assert.Contains(t, logs.String(), "The lock request was rejected by the system.")
}

func TestUsageError(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("not enough arguments")
	err := usageError(cause)
	require.ErrorIs(t, err, errors.ErrUsage)
	require.ErrorIs(t, err, errShowUsage)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "not enough arguments", err.Error())
	assert.Equal(t, constants.ExitUsage, ExitCodeForError(err))
}
