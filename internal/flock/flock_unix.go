//go:build unix

package flock

import (
	stderrors "errors"

	"golang.org/x/sys/unix"

	"github.com/mrz1836/flock/internal/errors"
)

// operation maps a Mode to its flock(2) operation.
func (m Mode) operation() int {
	switch m {
	case Shared:
		return unix.LOCK_SH
	case Unlock:
		return unix.LOCK_UN
	default:
		return unix.LOCK_EX
	}
}

// Flock issues a single flock(2) request on fd.
// EINTR is retried; any other failure is classified:
//   - EWOULDBLOCK: ErrWouldBlock
//   - ENOLCK, ENOMEM: ErrLockResources
//   - anything else: ErrLockFailed
//
// The returned error prints as the errno text and matches both the sentinel
// and the unix.Errno.
func Flock(fd int, mode Mode, nonBlocking bool) error {
	how := mode.operation()
	if nonBlocking {
		how |= unix.LOCK_NB
	}

	var err error
	for {
		err = unix.Flock(fd, how)
		if !stderrors.Is(err, unix.EINTR) {
			break
		}
	}

	return classify(err)
}

// Release drops any lock fd holds. Releasing an unlocked descriptor succeeds.
func Release(fd int) error {
	return Flock(fd, Unlock, false)
}

func classify(err error) error {
	if err == nil {
		return nil
	}

	var errno unix.Errno
	if !stderrors.As(err, &errno) {
		return errors.Mark(err, errors.ErrLockFailed)
	}

	switch errno {
	case unix.EWOULDBLOCK:
		return errors.Mark(errno, errors.ErrWouldBlock)
	case unix.ENOLCK, unix.ENOMEM:
		return errors.Mark(errno, errors.ErrLockResources)
	default:
		return errors.Mark(errno, errors.ErrLockFailed)
	}
}
