package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Command line
	// ===================
	{
		err: ErrUsage,
		info: ErrorInfo{
			Message: "The command line could not be understood.",
			Action:  "Run 'flock --help' for the accepted forms.",
		},
	},
	{
		err: ErrBadNumber,
		info: ErrorInfo{
			Message: "A lone argument must be an open file descriptor number.",
			Action:  "Pass a command after the file name, or use a descriptor opened by the shell (e.g. 9>/tmp/lock).",
		},
	},
	{
		err: ErrInvalidTimeout,
		info: ErrorInfo{
			Message: "The wait bound must be seconds with an optional fraction.",
			Action:  "Use a value such as -w 5 or -w 0.25.",
		},
	},
	{
		err: ErrInvalidMode,
		info: ErrorInfo{
			Message: "Unknown lock mode.",
			Action:  "Use one of shared, exclusive or unlock.",
		},
	},

	// ===================
	// Lock file
	// ===================
	{
		err: ErrOpenFailed,
		info: ErrorInfo{
			Message: "The lock file could not be opened.",
			Action:  "Check that the directory exists and is writable, or point at an existing file.",
		},
	},

	// ===================
	// Locking
	// ===================
	{
		err: ErrWouldBlock,
		info: ErrorInfo{
			Message: "Another process holds the lock.",
			Action:  "Retry later, or drop -n to wait for the holder.",
		},
	},
	{
		err: ErrLockTimeout,
		info: ErrorInfo{
			Message: "The lock was not released within the wait bound.",
			Action:  "Increase -w or find the process holding the lock.",
		},
	},
	{
		err: ErrLockResources,
		info: ErrorInfo{
			Message: "The system ran out of lock resources.",
			Action:  "Check for processes leaking locks or raise the system lock limits.",
		},
	},
	{
		err: ErrLockFailed,
		info: ErrorInfo{
			Message: "The lock request was rejected by the system.",
			Action:  "Make sure the descriptor is open in this shell.",
		},
	},

	// ===================
	// Command
	// ===================
	{
		err: ErrCommandUnavailable,
		info: ErrorInfo{
			Message: "The command could not be executed.",
			Action:  "Check the command name, PATH and the executable bit.",
		},
	},
	{
		err: ErrOutOfMemory,
		info: ErrorInfo{
			Message: "Not enough memory to start the command.",
		},
	},
	{
		err: ErrForkFailed,
		info: ErrorInfo{
			Message: "A child process could not be created.",
			Action:  "Check the process limit for this user (ulimit -u).",
		},
	},
	{
		err: ErrUnexpectedStatus,
		info: ErrorInfo{
			Message: "The command ended in an unexpected way.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoMap = buildErrorInfoMap()

func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// Direct sentinels hit the map, wrapped ones fall back to errors.Is().
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
