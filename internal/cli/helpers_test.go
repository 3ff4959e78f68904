package cli

import (
	"bytes"
	"strings"
	"sync"
)

// syncBuffer is a bytes.Buffer safe for the child's copy goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// cliResult is the observable outcome of one flock invocation.
type cliResult struct {
	code   int
	stdout string
	stderr string
	err    error
}

// runCLI runs flock in-process the way Execute does and reports what a
// shell would see.
func runCLI(args ...string) cliResult {
	if args == nil {
		args = []string{}
	}

	cmd := newRootCmd(&Options{}, BuildInfo{Version: "test"})
	var stdout, stderr syncBuffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	reportError(&stderr, err)

	return cliResult{
		code:   ExitCodeForError(err),
		stdout: stdout.String(),
		stderr: stderr.String(),
		err:    err,
	}
}
