package goprogress

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func immediate[T any](value T) Task[T] {
	return func(context.Context) (T, error) {
		return value, nil
	}
}

// gated returns a task that produces value once its gate channel is closed.
func gated[T any](value T, gate <-chan struct{}) Task[T] {
	return func(ctx context.Context) (T, error) {
		select {
		case <-gate:
			return value, nil
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

func TestAsCompletedYieldsAllResults(t *testing.T) {
	tasks := []Task[int]{immediate(1), immediate(2), immediate(3), immediate(4)}

	display := &countingDisplay{}
	it := AsCompleted(context.Background(), tasks, WithDisplay(display))

	results, err := it.Collect(context.Background())
	assert.NoError(t, err)
	assert.Len(t, results, 4)

	var values []int
	for _, r := range results {
		assert.NoError(t, r.Err)
		values = append(values, r.Value)
	}
	sort.Ints(values)
	assert.Equal(t, []int{1, 2, 3, 4}, values, "every task settles exactly once")

	updates, closes := display.counts()
	assert.Equal(t, 4, updates)
	assert.Equal(t, 1, closes)
}

func TestAsCompletedCompletionOrder(t *testing.T) {
	gates := []chan struct{}{
		make(chan struct{}),
		make(chan struct{}),
		make(chan struct{}),
	}
	tasks := []Task[string]{
		gated("A", gates[0]),
		gated("B", gates[1]),
		gated("C", gates[2]),
	}

	it := AsCompleted(context.Background(), tasks)

	ctx := context.Background()
	var got []string
	for _, idx := range []int{2, 0, 1} {
		close(gates[idx])
		result, err := it.Next(ctx)
		assert.NoError(t, err)
		value, taskErr := result.Unpack()
		assert.NoError(t, taskErr)
		got = append(got, value)
	}
	_, err := it.Next(ctx)
	assert.Equal(t, io.EOF, err)

	assert.Equal(t, []string{"C", "A", "B"}, got, "results arrive in completion order")
}

func TestAsCompletedExplicitTotal(t *testing.T) {
	tasks := []Task[int]{immediate(1), immediate(2), immediate(3)}

	it := AsCompleted(context.Background(), tasks, WithTotal(10))
	assert.Equal(t, int64(10), it.Display().(*Tracker).Total(), "total affects the denominator only")

	results, err := it.Collect(context.Background())
	assert.NoError(t, err)
	assert.Len(t, results, 3, "item count is never driven by total")
}

func TestAsCompletedDefaultTotal(t *testing.T) {
	tasks := []Task[int]{immediate(1), immediate(2)}
	it := AsCompleted(context.Background(), tasks)
	assert.Equal(t, int64(2), it.Display().(*Tracker).Total())
}

func TestAsCompletedTaskFailureIsAValue(t *testing.T) {
	errBoom := errors.New("boom")
	tasks := []Task[int]{
		immediate(1),
		func(context.Context) (int, error) { return 0, errBoom },
		immediate(3),
	}

	display := &countingDisplay{}
	it := AsCompleted(context.Background(), tasks, WithDisplay(display))

	results, err := it.Collect(context.Background())
	assert.NoError(t, err, "a task failure does not end the stream")
	assert.Len(t, results, 3)

	failures := 0
	for _, r := range results {
		if r.Err != nil {
			assert.Equal(t, errBoom, r.Err)
			failures++
		}
	}
	assert.Equal(t, 1, failures)

	updates, closes := display.counts()
	assert.Equal(t, 3, updates)
	assert.Equal(t, 1, closes)
}

func TestAsCompletedZeroTasks(t *testing.T) {
	display := &countingDisplay{}
	it := AsCompleted(context.Background(), []Task[int]{}, WithDisplay(display))

	_, err := it.Next(context.Background())
	assert.Equal(t, io.EOF, err)

	updates, closes := display.counts()
	assert.Equal(t, 0, updates)
	assert.Equal(t, 1, closes)
}

func TestAsCompletedTimeout(t *testing.T) {
	gate := make(chan struct{})
	defer close(gate)
	tasks := []Task[int]{immediate(1), gated(2, gate)}

	display := &countingDisplay{}
	it := AsCompleted(context.Background(), tasks,
		WithTimeout(50*time.Millisecond), WithDisplay(display))

	ctx := context.Background()
	first, err := it.Next(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, first.Value)

	_, err = it.Next(ctx)
	assert.Equal(t, context.DeadlineExceeded, err)

	updates, closes := display.counts()
	assert.Equal(t, 1, updates, "progress already displayed is left as-is")
	assert.Equal(t, 1, closes)
}

func TestAsCompletedLimit(t *testing.T) {
	var running, peak atomic.Int32
	tasks := make([]Task[int], 8)
	for i := range tasks {
		tasks[i] = func(context.Context) (int, error) {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			return 0, nil
		}
	}

	it := AsCompleted(context.Background(), tasks, WithLimit(2))
	results, err := it.Collect(context.Background())
	assert.NoError(t, err)
	assert.Len(t, results, 8)
	assert.LessOrEqual(t, peak.Load(), int32(2), "limit bounds concurrent tasks")
}

func TestAsCompletedLimitStreamsLazily(t *testing.T) {
	gate := make(chan struct{})
	tasks := []Task[int]{
		immediate(1),
		gated(2, gate),
		gated(3, gate),
	}

	it := AsCompleted(context.Background(), tasks, WithLimit(1))

	// The first settled result must be pullable while the remaining tasks
	// are still queued behind the limit.
	first, err := it.Next(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, first.Value)

	close(gate)
	rest, err := it.Collect(context.Background())
	assert.NoError(t, err)
	assert.Len(t, rest, 2)
}

func TestAsCompletedCallerCancel(t *testing.T) {
	gate := make(chan struct{})
	defer close(gate)
	tasks := []Task[int]{gated(1, gate)}

	it := AsCompleted(context.Background(), tasks)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := it.Next(ctx)
	assert.Equal(t, context.Canceled, err)
}
