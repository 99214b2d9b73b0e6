package goprogress

import (
	"cmp"
	"context"
	"io"
	"slices"
)

// Gather runs tasks concurrently and returns their results in submission
// order, with one display update per completed task along the way.
//
// Each task is tagged with its 0-based index, the tagged set is drained
// through AsCompleted, and the collected pairs are stable-sorted back into
// input order. The first failure - a task error, timeout expiry or ctx
// cancellation - aborts collection, discards any partial results and is
// returned unchanged. Sibling tasks already running are left to finish (or
// to observe ctx); Gather does not cancel them itself.
//
// Zero tasks yield an empty slice, zero updates and no error.
func Gather[T any](ctx context.Context, tasks []Task[T], opts ...Option) ([]T, error) {
	tagged := make([]Task[numbered[T]], len(tasks))
	for i, task := range tasks {
		tagged[i] = func(ctx context.Context) (numbered[T], error) {
			value, err := task(ctx)
			return numbered[T]{pos: i, value: value}, err
		}
	}

	it := AsCompleted(ctx, tagged, opts...)
	defer it.Close()

	collected := make([]numbered[T], 0, len(tasks))
	for {
		result, err := it.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if result.Err != nil {
			return nil, result.Err
		}
		collected = append(collected, result.Value)
	}

	slices.SortStableFunc(collected, func(a, b numbered[T]) int {
		return cmp.Compare(a.pos, b.pos)
	})
	out := make([]T, len(collected))
	for i, item := range collected {
		out[i] = item.value
	}
	return out, nil
}

// Map applies fn to every input concurrently and returns the outputs in
// input order, tracking progress as tasks complete. Concurrency is bounded
// by WithLimit. Failure semantics are those of Gather.
func Map[T, R any](ctx context.Context, inputs []T, fn func(context.Context, T) (R, error), opts ...Option) ([]R, error) {
	tasks := make([]Task[R], len(inputs))
	for i, input := range inputs {
		tasks[i] = func(ctx context.Context) (R, error) {
			return fn(ctx, input)
		}
	}
	return Gather(ctx, tasks, opts...)
}
