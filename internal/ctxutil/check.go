// Package ctxutil provides context utility functions.
package ctxutil

import "context"

// Canceled returns ctx.Err(): nil while ctx is live, Canceled or
// DeadlineExceeded once it is done. Blocking entry points call it first so a
// dead context never reaches a system call.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}

// Cancelable reports whether ctx can ever be done. context.Background and
// context.TODO cannot.
func Cancelable(ctx context.Context) bool {
	return ctx.Done() != nil
}
