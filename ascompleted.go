package goprogress

import (
	"context"
	"io"
	"time"

	"golang.org/x/sync/errgroup"
)

// AsCompleted runs tasks concurrently and returns an Iter yielding each
// settled Result as soon as its task finishes, in completion order. Every
// pulled result fires one display update; the display total defaults to
// len(tasks) (WithTotal overrides the shown denominator only).
//
// The stream is single-pass and finite: exactly len(tasks) results, then
// io.EOF. Individual task failures do not interrupt the stream - they arrive
// as Result.Err when that task settles. WithTimeout bounds the whole call;
// on expiry Next fails with context.DeadlineExceeded after closing the
// display once. Outstanding tasks are never cancelled by this package beyond
// ctx itself; the settle buffer holds all of them, so an abandoned stream
// leaks no goroutines once the tasks return.
func AsCompleted[T any](ctx context.Context, tasks []Task[T], opts ...Option) *Iter[Result[T]] {
	cfg := newConfig(opts)
	if cfg.total < 0 {
		cfg.total = int64(len(tasks))
	}

	var timer *time.Timer
	var expired <-chan time.Time
	if cfg.timeout > 0 {
		timer = time.NewTimer(cfg.timeout)
		expired = timer.C
	}

	settled := make(chan Result[T], len(tasks))
	g := &errgroup.Group{}
	if cfg.limit > 0 {
		g.SetLimit(cfg.limit)
	}
	// Launch off the caller's goroutine: with a limit, Go blocks until a
	// slot frees, and the timer must cover the launch phase too.
	go func() {
		for _, task := range tasks {
			g.Go(func() error {
				value, err := task(ctx)
				settled <- Result[T]{Value: value, Err: err}
				return nil
			})
		}
		_ = g.Wait() // task failures travel as Results
		close(settled)
	}()
	next := func(ctx context.Context) (Result[T], error) {
		var zero Result[T]
		select {
		case result, ok := <-settled:
			if !ok {
				return zero, io.EOF
			}
			return result, nil
		case <-expired:
			return zero, context.DeadlineExceeded
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
	it := newIter(next, tasks, cfg)
	if timer != nil {
		it.release = func() { timer.Stop() }
	}
	return it
}
