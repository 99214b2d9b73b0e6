package goprogress

import (
	"sync"
	"time"
)

// Reporter receives tracker events. Implementations must be safe for
// concurrent use and must not block: Report is called inline from the
// goroutine driving iteration.
type Reporter interface {
	Report(event Event)
}

// NoopReporter discards all events. It is the default when no reporter is
// configured, so an untracked sequence costs almost nothing.
type NoopReporter struct{}

// Report implements Reporter; it performs no action.
func (NoopReporter) Report(Event) {}

// ChannelReporter exposes events on a channel for programmatic consumers.
// Sends are non-blocking; events are dropped when the buffer is full. The
// channel is never closed - watch for an Event with Done set instead.
type ChannelReporter struct {
	events chan Event
}

// NewChannelReporter creates a channel reporter with the given buffer size
// (a sensible default is applied for sizes < 1).
func NewChannelReporter(buffer int) *ChannelReporter {
	if buffer < 1 {
		buffer = 64
	}
	return &ChannelReporter{events: make(chan Event, buffer)}
}

// Report implements Reporter with a non-blocking send.
func (r *ChannelReporter) Report(event Event) {
	select {
	case r.events <- event:
	default:
	}
}

// Events returns the channel on which events are delivered.
func (r *ChannelReporter) Events() <-chan Event {
	return r.events
}

// MultiReporter fans each event out to every given reporter, in order.
func MultiReporter(reporters ...Reporter) Reporter {
	return multiReporter(reporters)
}

type multiReporter []Reporter

func (m multiReporter) Report(event Event) {
	for _, r := range m {
		r.Report(event)
	}
}

// ThrottledReporter drops intermediate events so the wrapped reporter sees
// at most one per interval. First and last events always pass through, so
// consumers see both the start and the final state of a sequence.
type ThrottledReporter struct {
	reporter Reporter
	interval time.Duration

	mu         sync.Mutex
	lastReport time.Time
	reported   int64
}

// DefaultThrottleInterval is used when no interval is configured.
const DefaultThrottleInterval = 100 * time.Millisecond

// NewThrottledReporter wraps reporter with throttling at the given interval
// (DefaultThrottleInterval when interval <= 0).
func NewThrottledReporter(reporter Reporter, interval time.Duration) *ThrottledReporter {
	if interval <= 0 {
		interval = DefaultThrottleInterval
	}
	return &ThrottledReporter{reporter: reporter, interval: interval}
}

// Report forwards the event when it is the first one seen, a final one
// (Done or Current == Total), or the throttle interval has elapsed.
func (t *ThrottledReporter) Report(event Event) {
	t.mu.Lock()
	now := time.Now()
	first := t.reported == 0
	last := event.Done || (event.Total > 0 && event.Current >= event.Total)
	if !first && !last && now.Sub(t.lastReport) < t.interval {
		t.mu.Unlock()
		return
	}
	t.lastReport = now
	t.reported++
	t.mu.Unlock()
	t.reporter.Report(event)
}
