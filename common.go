package goprogress

import "context"

// Task is an independently schedulable asynchronous operation. It runs on
// its own goroutine when handed to AsCompleted, Gather or Map, and should
// honor ctx cancellation at its own suspension points.
type Task[T any] func(ctx context.Context) (T, error)

// Result carries one settled task outcome. Failures travel as values so a
// completion-order stream can keep yielding after an individual task errors;
// callers decide when to surface Err.
type Result[T any] struct {
	Value T     // The value produced by the task
	Err   error // The task's failure, nil on success
}

// Unpack returns the result as a plain (value, error) pair.
func (r Result[T]) Unpack() (T, error) {
	return r.Value, r.Err
}

// numbered pairs a value with its original submission position so Gather can
// restore input order after completion-order collection.
type numbered[T any] struct {
	pos   int
	value T
}
