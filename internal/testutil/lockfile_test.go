//go:build unix

package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestLockPath_DoesNotExist(t *testing.T) {
	path := LockPath(t)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestOpenLockFile_Creates(t *testing.T) {
	path := LockPath(t)
	f := OpenLockFile(t, path)
	require.NotNil(t, f)

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestHoldLock_ConflictsUntilReleased(t *testing.T) {
	path := LockPath(t)
	release := HoldLock(t, path, unix.LOCK_EX)

	f := OpenLockFile(t, path)
	require.ErrorIs(t, unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB), unix.EWOULDBLOCK)

	release()
	release()
	require.NoError(t, unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB))
}
