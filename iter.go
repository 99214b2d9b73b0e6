package goprogress

import (
	"context"
	"io"
	"iter"
	"sync"
)

// nextFunc is the pull strategy bound to an Iter at construction time. It
// returns the next element, io.EOF on exhaustion, or the source's own error.
type nextFunc[T any] func(ctx context.Context) (T, error)

// Iter is a lazy proxy over a pull-based source. Every successfully produced
// element fires exactly one Display.Update; the first terminal event
// (exhaustion or failure) fires Display.Close exactly once, no matter how
// often iteration is attempted afterwards.
//
// An Iter is single-consumer: exactly one goroutine may drive Next (or All /
// Collect) at a time. The display itself may be shared across iterators and
// guards its own state.
type Iter[T any] struct {
	next    nextFunc[T]
	source  any
	display Display
	release func() // extra teardown bound by the source (pull stop, timers)

	done      bool
	err       error
	closeOnce sync.Once
}

func newIter[T any](next nextFunc[T], source any, cfg *config) *Iter[T] {
	return &Iter[T]{
		next:    next,
		source:  source,
		display: cfg.newDisplay(),
	}
}

// Next produces the next element from the wrapped source.
//
// On success the display is updated by one unit and the element is returned
// untouched. Exhaustion is reported as io.EOF. Any other error from the
// source is returned unchanged. Either terminal event closes the display
// once; subsequent calls return io.EOF without touching the display again.
func (it *Iter[T]) Next(ctx context.Context) (T, error) {
	var zero T
	if it.done {
		return zero, io.EOF
	}
	value, err := it.next(ctx)
	if err != nil {
		if err != io.EOF {
			it.err = err
		}
		it.finish()
		return zero, err
	}
	it.display.Update()
	return value, nil
}

// Close abandons iteration. The display close fires at most once per Iter,
// shared with the terminal path of Next, so calling Close after exhaustion
// or failure is a no-op. It never fails; the error return satisfies
// io.Closer.
func (it *Iter[T]) Close() error {
	it.finish()
	return nil
}

// Err returns the terminal failure observed during iteration, whether the
// caller was driving Next, All or Collect. Normal exhaustion and
// abandonment via Close leave Err nil.
func (it *Iter[T]) Err() error {
	return it.err
}

// All returns a range-over-func view of the remaining elements.
//
// The sequence ends on exhaustion, on failure (retrievable via Err
// afterwards, identity preserved) or when the consumer breaks early, in
// which case the display is closed as if the Iter had been Closed.
func (it *Iter[T]) All(ctx context.Context) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			value, err := it.Next(ctx)
			if err != nil {
				return
			}
			if !yield(value) {
				it.finish()
				return
			}
		}
	}
}

// Collect drains the iterator into a slice. A failure discards everything
// collected so far and is returned unchanged.
func (it *Iter[T]) Collect(ctx context.Context) ([]T, error) {
	out := []T{}
	for {
		value, err := it.Next(ctx)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, value)
	}
}

// Display returns the display this Iter updates. Useful for adjusting the
// total mid-flight when the default Tracker is in use.
func (it *Iter[T]) Display() Display {
	return it.display
}

// Unwrap returns the wrapped source unchanged so callers can reach
// capabilities the proxy does not instrument, such as two-way communication
// with a generator-style source.
func (it *Iter[T]) Unwrap() any {
	return it.source
}

func (it *Iter[T]) finish() {
	it.done = true
	it.closeOnce.Do(func() {
		if it.release != nil {
			it.release()
		}
		it.display.Close()
	})
}
