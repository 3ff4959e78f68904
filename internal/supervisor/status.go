//go:build unix

package supervisor

import (
	"os"
	"syscall"

	"github.com/mrz1836/flock/internal/constants"
	"github.com/mrz1836/flock/internal/errors"
)

// ExitStatus translates how a child ended into the status flock exits with:
//   - exited with N: N
//   - killed by signal S: 128+S
//   - anything else: EX_OSERR with ErrUnexpectedStatus
func ExitStatus(state *os.ProcessState) (int, error) {
	if state == nil {
		return constants.ExitOSErr, errors.Wrap(errors.ErrUnexpectedStatus, "no process state")
	}
	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok {
		return constants.ExitOSErr, errors.Wrapf(errors.ErrUnexpectedStatus, "%T", state.Sys())
	}
	return translate(ws)
}

func translate(ws syscall.WaitStatus) (int, error) {
	switch {
	case ws.Exited():
		return ws.ExitStatus(), nil
	case ws.Signaled():
		return constants.SignalExitBase + int(ws.Signal()), nil
	default:
		return constants.ExitOSErr, errors.Wrapf(errors.ErrUnexpectedStatus, "status %#x", uint32(ws))
	}
}
