// Package flock acquires and releases BSD advisory locks (flock(2)) on open
// descriptors.
//
// Locks belong to the open file description, so they survive fork/exec of any
// process sharing it and disappear when the last copy is closed. A lock taken
// through one open(2) conflicts with a lock taken through another, even inside
// the same process.
//
// Usage:
//
//	f, _ := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0o666)
//	a := flock.NewAcquirer(flock.WithLogger(logger))
//	err := a.Acquire(ctx, int(f.Fd()), flock.Request{
//	    Mode:    flock.Exclusive,
//	    Bounded: true,
//	    Timeout: 5 * time.Second,
//	})
//	if errors.Is(err, flockerrors.ErrLockTimeout) {
//	    // Someone else kept it for 5s
//	}
package flock
