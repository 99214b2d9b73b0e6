// Package goprogress wraps sequences and collections of concurrent tasks
// with transparent progress tracking.
//
// The package proxies any pull-based source - a synchronous iterator, a
// context-aware asynchronous iterator, an iter.Seq, a slice or a channel -
// and yields the same elements unchanged while counting them against a
// progress Display. On top of that it provides completion-order and
// submission-order consumption of concurrent task sets.
//
// The main components include:
//
//   - Iter: A lazy wrapper around any supported source that fires one display update per element produced and closes the display exactly once on exhaustion or failure
//   - AsCompleted: Runs a set of tasks and yields each settled result as soon as it finishes, in completion order, with progress per result
//   - Gather: Consumes AsCompleted but reassembles results into the original submission order
//   - Map: Ordered concurrent map over a slice with progress and optional concurrency limit
//   - Tracker: The default Display implementation, deriving rate, percent and remaining time from a monotonic count
//   - Reporter: Pluggable observers for tracker events (channel, zap logging, Prometheus collectors, OpenTelemetry span events, throttling)
//
// Iteration never alters, reorders or swallows values or errors: failures
// from a source propagate to the caller unchanged after the display has been
// finalized.
package goprogress
