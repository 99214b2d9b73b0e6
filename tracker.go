package goprogress

import (
	"sync"
	"time"
)

// Display is the contract an Iter needs from a progress display: a fast,
// non-blocking per-element update and a one-shot close. The Iter guarantees
// it never calls Close more than once.
type Display interface {
	Update()
	Close()
}

// Tracker is the default Display. It keeps a monotonic count against an
// optional total, derives rate / percent / remaining time on every update
// and hands the resulting Event to a Reporter.
//
// A Tracker can also be driven manually (no Iter involved) via Add and
// SetTotal, e.g. when progress units don't map 1:1 onto loop iterations.
// It is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	desc     string
	n        int64
	total    int64 // negative when unknown
	start    time.Time
	closed   bool
	reporter Reporter
}

// NewTracker creates a tracker configured via the same options Wrap accepts.
// Tracking time starts immediately.
func NewTracker(opts ...Option) *Tracker {
	cfg := newConfig(opts)
	return newTracker(cfg)
}

func newTracker(cfg *config) *Tracker {
	return &Tracker{
		desc:     cfg.desc,
		total:    cfg.total,
		start:    time.Now(),
		reporter: cfg.newReporter(),
	}
}

// Update increments progress by one unit.
func (t *Tracker) Update() {
	t.Add(1)
}

// Add increments progress by delta units and reports a snapshot.
// Updates after Close are dropped.
func (t *Tracker) Add(delta int64) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.n += delta
	event := t.snapshotLocked(false)
	t.mu.Unlock()
	t.reporter.Report(event)
}

// Close finalizes the tracker and reports a Done event. Only the first call
// has any effect.
func (t *Tracker) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	event := t.snapshotLocked(true)
	t.mu.Unlock()
	t.reporter.Report(event)
}

// SetTotal replaces the expected element count. Pass a negative value to
// mark the total unknown.
func (t *Tracker) SetTotal(total int64) {
	t.mu.Lock()
	t.total = total
	t.mu.Unlock()
}

// Count returns the number of units recorded so far.
func (t *Tracker) Count() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.n
}

// Total returns the expected element count, negative when unknown.
func (t *Tracker) Total() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

func (t *Tracker) snapshotLocked(done bool) Event {
	elapsed := time.Since(t.start)
	event := Event{
		TS:      time.Now(),
		Desc:    t.desc,
		Current: t.n,
		Total:   t.total,
		Elapsed: elapsed,
		Done:    done,
	}
	if secs := elapsed.Seconds(); secs > 0 && t.n > 0 {
		event.Rate = float64(t.n) / secs
		if t.total > t.n {
			event.Remaining = time.Duration(float64(t.total-t.n) / event.Rate * float64(time.Second))
		}
	}
	event.normalize()
	return event
}
