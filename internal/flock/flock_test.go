//go:build unix

package flock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	flockerrors "github.com/mrz1836/flock/internal/errors"
	"github.com/mrz1836/flock/internal/flock"
	"github.com/mrz1836/flock/internal/testutil"
)

func TestFlock_Exclusive(t *testing.T) {
	t.Parallel()

	t.Run("acquires lock on new file", func(t *testing.T) {
		t.Parallel()
		f := testutil.OpenLockFile(t, testutil.LockPath(t))

		require.NoError(t, flock.Flock(int(f.Fd()), flock.Exclusive, true))
		require.NoError(t, flock.Release(int(f.Fd())))
	})

	t.Run("fails to acquire lock when already held", func(t *testing.T) {
		t.Parallel()
		path := testutil.LockPath(t)
		testutil.HoldLock(t, path, unix.LOCK_EX)

		f := testutil.OpenLockFile(t, path)
		err := flock.Flock(int(f.Fd()), flock.Exclusive, true)
		require.ErrorIs(t, err, flockerrors.ErrWouldBlock)
		assert.ErrorIs(t, err, unix.EWOULDBLOCK)
	})

	t.Run("lock can be reacquired after unlock", func(t *testing.T) {
		t.Parallel()
		f := testutil.OpenLockFile(t, testutil.LockPath(t))
		fd := int(f.Fd())

		require.NoError(t, flock.Flock(fd, flock.Exclusive, true))
		require.NoError(t, flock.Release(fd))
		require.NoError(t, flock.Flock(fd, flock.Exclusive, true))
		require.NoError(t, flock.Release(fd))
	})
}

func TestFlock_Shared(t *testing.T) {
	t.Parallel()

	t.Run("shared holders coexist", func(t *testing.T) {
		t.Parallel()
		path := testutil.LockPath(t)
		testutil.HoldLock(t, path, unix.LOCK_SH)

		f := testutil.OpenLockFile(t, path)
		require.NoError(t, flock.Flock(int(f.Fd()), flock.Shared, true))
	})

	t.Run("shared is denied by exclusive holder", func(t *testing.T) {
		t.Parallel()
		path := testutil.LockPath(t)
		testutil.HoldLock(t, path, unix.LOCK_EX)

		f := testutil.OpenLockFile(t, path)
		require.ErrorIs(t, flock.Flock(int(f.Fd()), flock.Shared, true), flockerrors.ErrWouldBlock)
	})

	t.Run("exclusive is denied by shared holder", func(t *testing.T) {
		t.Parallel()
		path := testutil.LockPath(t)
		testutil.HoldLock(t, path, unix.LOCK_SH)

		f := testutil.OpenLockFile(t, path)
		require.ErrorIs(t, flock.Flock(int(f.Fd()), flock.Exclusive, true), flockerrors.ErrWouldBlock)
	})
}

func TestFlock_Release(t *testing.T) {
	t.Parallel()

	t.Run("unlock is idempotent", func(t *testing.T) {
		t.Parallel()
		f := testutil.OpenLockFile(t, testutil.LockPath(t))
		fd := int(f.Fd())

		require.NoError(t, flock.Flock(fd, flock.Exclusive, false))
		require.NoError(t, flock.Release(fd))
		require.NoError(t, flock.Release(fd))
	})

	t.Run("release lets a competitor in", func(t *testing.T) {
		t.Parallel()
		path := testutil.LockPath(t)
		first := testutil.OpenLockFile(t, path)
		second := testutil.OpenLockFile(t, path)

		require.NoError(t, flock.Flock(int(first.Fd()), flock.Exclusive, true))
		require.ErrorIs(t, flock.Flock(int(second.Fd()), flock.Exclusive, true), flockerrors.ErrWouldBlock)
		require.NoError(t, flock.Release(int(first.Fd())))
		require.NoError(t, flock.Flock(int(second.Fd()), flock.Exclusive, true))
	})
}

func TestFlock_BadDescriptor(t *testing.T) {
	t.Parallel()

	err := flock.Flock(-1, flock.Exclusive, true)
	require.ErrorIs(t, err, flockerrors.ErrLockFailed)
	require.ErrorIs(t, err, unix.EBADF)
	assert.NotErrorIs(t, err, flockerrors.ErrWouldBlock)
	assert.Equal(t, unix.EBADF.Error(), err.Error())
}
