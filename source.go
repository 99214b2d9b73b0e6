package goprogress

import (
	"context"
	"fmt"
	"io"
	"iter"
)

// Iterator is a synchronous pull-based source: Next returns the next element
// or io.EOF once the sequence is exhausted.
type Iterator[T any] interface {
	Next() (T, error)
}

// ContextIterator is an asynchronous pull-based source: Next may suspend
// until the next element is ready or ctx is done.
type ContextIterator[T any] interface {
	Next(ctx context.Context) (T, error)
}

// Wrap builds an Iter over source, binding exactly one pull strategy for the
// proxy's lifetime. Capabilities are probed once, in priority order:
//
//  1. ContextIterator[T] - bound directly as an asynchronous pull
//  2. Iterator[T] - bound directly as a synchronous pull, no re-wrapping
//  3. a collection form: iter.Seq[T], []T, a receive channel, or a bare
//     next function (with or without ctx)
//
// Wrapping a []T infers the display total from its length unless WithTotal
// overrides it. A nil or unsupported source is a configuration error
// reported here rather than from deep inside iteration.
func Wrap[T any](source any, opts ...Option) (*Iter[T], error) {
	cfg := newConfig(opts)
	var next nextFunc[T]
	var release func()

	switch src := source.(type) {
	case ContextIterator[T]:
		next = src.Next
	case Iterator[T]:
		next = func(context.Context) (T, error) { return src.Next() }
	case iter.Seq[T]:
		next, release = seqNext(src)
	case func(func(T) bool):
		next, release = seqNext(iter.Seq[T](src))
	case []T:
		if cfg.total < 0 {
			cfg.total = int64(len(src))
		}
		pos := 0
		next = func(context.Context) (T, error) {
			if pos >= len(src) {
				var zero T
				return zero, io.EOF
			}
			value := src[pos]
			pos++
			return value, nil
		}
	case <-chan T:
		next = chanNext(src)
	case chan T:
		next = chanNext[T](src)
	case func(context.Context) (T, error):
		next = src
	case func() (T, error):
		next = func(context.Context) (T, error) { return src() }
	case nil:
		return nil, fmt.Errorf("goprogress: cannot wrap nil source")
	default:
		return nil, fmt.Errorf("goprogress: cannot wrap source of type %T", source)
	}

	it := newIter(next, source, cfg)
	it.release = release
	return it, nil
}

// seqNext pulls from an iter.Seq, translating sequence end into io.EOF.
// The returned release stops the underlying pull iterator.
func seqNext[T any](seq iter.Seq[T]) (nextFunc[T], func()) {
	pull, stop := iter.Pull(seq)
	next := func(context.Context) (T, error) {
		value, ok := pull()
		if !ok {
			var zero T
			return zero, io.EOF
		}
		return value, nil
	}
	return next, stop
}

// chanNext pulls from a channel, treating channel close as exhaustion.
// The receive suspends, so ctx cancellation is honored while waiting.
func chanNext[T any](ch <-chan T) nextFunc[T] {
	return func(ctx context.Context) (T, error) {
		select {
		case value, ok := <-ch:
			if !ok {
				var zero T
				return zero, io.EOF
			}
			return value, nil
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// NewRange returns an Iter counting 0 through n-1 with total n, handy for
// progress over a known number of steps.
func NewRange(n int, opts ...Option) *Iter[int] {
	return NewRangeFrom(0, n, 1, opts...)
}

// NewRangeFrom returns an Iter over start, start+step, ... up to (but not
// including) stop. A zero step panics; a negative step counts down.
func NewRangeFrom(start, stop, step int, opts ...Option) *Iter[int] {
	if step == 0 {
		panic("goprogress: range step must be non-zero")
	}
	cfg := newConfig(opts)
	if cfg.total < 0 {
		cfg.total = rangeLen(start, stop, step)
	}
	cur := start
	next := func(context.Context) (int, error) {
		if (step > 0 && cur >= stop) || (step < 0 && cur <= stop) {
			return 0, io.EOF
		}
		value := cur
		cur += step
		return value, nil
	}
	return newIter(next, nil, cfg)
}

func rangeLen(start, stop, step int) int64 {
	span := int64(stop) - int64(start)
	if step < 0 {
		span = -span
		step = -step
	}
	if span <= 0 {
		return 0
	}
	return (span + int64(step) - 1) / int64(step)
}
