package goprogress

import "time"

// Option configures wrapping, tracking and task execution. Options not
// relevant to a given call are ignored (e.g. WithTimeout on a plain Wrap).
type Option func(*config)

type config struct {
	display     Display
	reporters   []Reporter
	total       int64 // negative when unknown
	desc        string
	minInterval time.Duration
	timeout     time.Duration
	limit       int
}

func newConfig(opts []Option) *config {
	cfg := &config{total: -1}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithDisplay uses d instead of a freshly built Tracker. Display-related
// options (total, description, reporters) are then ignored.
func WithDisplay(d Display) Option {
	return func(c *config) {
		c.display = d
	}
}

// WithTotal sets the expected element count shown by the display. It only
// affects the displayed denominator, never how many elements are produced.
func WithTotal(total int64) Option {
	return func(c *config) {
		c.total = total
	}
}

// WithDescription labels the tracked sequence.
func WithDescription(desc string) Option {
	return func(c *config) {
		c.desc = desc
	}
}

// WithReporter adds reporters that receive tracker events.
func WithReporter(reporters ...Reporter) Option {
	return func(c *config) {
		c.reporters = append(c.reporters, reporters...)
	}
}

// WithMinInterval throttles reporting to at most one event per interval.
// First and last events always pass through.
func WithMinInterval(interval time.Duration) Option {
	return func(c *config) {
		c.minInterval = interval
	}
}

// WithTimeout bounds a whole AsCompleted or Gather call. On expiry the
// in-flight wait fails with context.DeadlineExceeded.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// WithLimit caps how many tasks run concurrently in AsCompleted, Gather and
// Map. Zero or negative means unlimited.
func WithLimit(limit int) Option {
	return func(c *config) {
		c.limit = limit
	}
}

func (c *config) newDisplay() Display {
	if c.display != nil {
		return c.display
	}
	return newTracker(c)
}

func (c *config) newReporter() Reporter {
	var reporter Reporter
	switch len(c.reporters) {
	case 0:
		reporter = NoopReporter{}
	case 1:
		reporter = c.reporters[0]
	default:
		reporter = MultiReporter(c.reporters...)
	}
	if c.minInterval > 0 {
		reporter = NewThrottledReporter(reporter, c.minInterval)
	}
	return reporter
}
