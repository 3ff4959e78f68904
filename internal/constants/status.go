package constants

// Exit statuses returned to the invoking shell.
//
// The EX_* values follow sysexits(3) so scripts written against the classic
// util-linux flock keep working.
const (
	// ExitSuccess means the lock was handled and the command (if any) exited 0.
	ExitSuccess = 0

	// ExitLockDenied means the lock was not obtained under -n or -w.
	ExitLockDenied = 1

	// ExitUsage is EX_USAGE: the command was used incorrectly.
	ExitUsage = 64

	// ExitDataErr is EX_DATAERR: the lock call failed for a reason other than contention.
	ExitDataErr = 65

	// ExitNoInput is EX_NOINPUT: the lock file could not be opened.
	ExitNoInput = 66

	// ExitUnavailable is EX_UNAVAILABLE: the command could not be executed.
	ExitUnavailable = 69

	// ExitOSErr is EX_OSERR: fork failure, memory or lock table exhaustion,
	// or an unexpected wait status.
	ExitOSErr = 71

	// ExitCantCreat is EX_CANTCREAT: the lock file could not be created.
	ExitCantCreat = 73
)
