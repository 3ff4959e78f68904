//go:build unix

// Package testutil provides lock-file helpers shared by flock's tests.
//
// It should only be imported by test files (*_test.go).
package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/sys/unix"
)

// LockPath returns a path for a lock file inside a fresh temp dir.
// The file does not exist yet.
func LockPath(tb testing.TB) string {
	tb.Helper()
	return filepath.Join(tb.TempDir(), "test.lock")
}

// OpenLockFile opens (creating if needed) path as its own open file
// description. The file is closed during cleanup.
func OpenLockFile(tb testing.TB, path string) *os.File {
	tb.Helper()

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600) // #nosec G304 -- test code using safe temp dir
	if err != nil {
		tb.Fatalf("failed to open lock file: %v", err)
	}
	tb.Cleanup(func() {
		_ = f.Close()
	})
	return f
}

// HoldLock takes a competing lock on path through a separate open file
// description and returns a func that releases it. how is unix.LOCK_EX or
// unix.LOCK_SH. The release func is safe to call from any goroutine, more than
// once, and is also called during cleanup.
func HoldLock(tb testing.TB, path string, how int) (release func()) {
	tb.Helper()

	f := OpenLockFile(tb, path)
	if err := unix.Flock(int(f.Fd()), how|unix.LOCK_NB); err != nil {
		tb.Fatalf("failed to hold competing lock: %v", err)
	}

	var once sync.Once
	release = func() {
		once.Do(func() {
			if err := unix.Flock(int(f.Fd()), unix.LOCK_UN); err != nil {
				tb.Errorf("failed to release competing lock: %v", err)
			}
		})
	}
	tb.Cleanup(release)
	return release
}
