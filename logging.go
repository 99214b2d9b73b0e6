package goprogress

import "go.uber.org/zap"

// ZapReporter emits structured logs for progress events. Useful during
// development or in services where progress belongs in the log stream rather
// than on a terminal.
type ZapReporter struct {
	logger *zap.Logger
}

// NewZapReporter wires a Zap logger to the Reporter interface. A nil logger
// falls back to zap.NewNop.
func NewZapReporter(logger *zap.Logger) *ZapReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapReporter{logger: logger}
}

// Report logs the event using structured fields. Intermediate events go to
// Debug, the final event to Info. Combine with a ThrottledReporter when the
// sequence is hot.
func (r *ZapReporter) Report(event Event) {
	fields := []zap.Field{
		zap.String("desc", event.Desc),
		zap.Int64("current", event.Current),
		zap.Int64("total", event.Total),
		zap.Float64("percent", event.Percent),
		zap.Float64("rate", event.Rate),
		zap.Duration("elapsed", event.Elapsed),
		zap.Duration("remaining", event.Remaining),
	}
	if event.Done {
		r.logger.Info("progress complete", fields...)
		return
	}
	r.logger.Debug("progress", fields...)
}
