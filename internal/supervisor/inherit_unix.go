//go:build unix

package supervisor

import "golang.org/x/sys/unix"

// setInheritable clears (inherit) or sets FD_CLOEXEC on fd. A descriptor
// without FD_CLOEXEC shows up in the child under the same number.
func setInheritable(fd int, inherit bool) error {
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
	if err != nil {
		return err
	}

	want := flags | unix.FD_CLOEXEC
	if inherit {
		want = flags &^ unix.FD_CLOEXEC
	}
	if want == flags {
		return nil
	}

	_, err = unix.FcntlInt(uintptr(fd), unix.F_SETFD, want)
	return err
}
