package goprogress

import "time"

// Event is a snapshot of progress at a specific point in time. The Tracker
// emits one per update and a final one (Done=true) when it closes.
type Event struct {
	// TS is when the snapshot was taken. Reporters may rely on it being set;
	// normalize fills it in when the producer left it zero.
	TS time.Time

	// Desc labels the sequence being tracked, e.g. "downloading".
	Desc string

	// Current is the number of elements produced so far.
	Current int64

	// Total is the expected element count. Negative when unknown.
	Total int64

	// Percent is the completion percentage (0-100), derived from
	// Current/Total. Zero when the total is unknown.
	Percent float64

	// Rate is the production rate in elements per second.
	Rate float64

	// Elapsed is the time since tracking started.
	Elapsed time.Duration

	// Remaining estimates time to completion from Rate and Total.
	// Zero when either is unknown.
	Remaining time.Duration

	// Done marks the final event of a sequence.
	Done bool
}

// normalize fills derived fields the producer left unset.
func (e *Event) normalize() {
	if e.TS.IsZero() {
		e.TS = time.Now()
	}
	if e.Total > 0 {
		e.Percent = float64(e.Current) / float64(e.Total) * 100
		if e.Percent > 100 {
			e.Percent = 100
		}
	}
}
