package goprogress

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SpanReporter records progress as events on an OpenTelemetry span, so a
// long-running traced operation shows how far it got and when. Pair it with
// a ThrottledReporter to keep span event volume bounded.
type SpanReporter struct {
	span trace.Span
}

// NewSpanReporter attaches progress reporting to the given span.
func NewSpanReporter(span trace.Span) *SpanReporter {
	return &SpanReporter{span: span}
}

// Report adds a span event for the progress snapshot. Non-recording spans
// are skipped.
func (r *SpanReporter) Report(event Event) {
	if r.span == nil || !r.span.IsRecording() {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.Int64("progress.current", event.Current),
		attribute.Int64("progress.total", event.Total),
	}
	if event.Desc != "" {
		attrs = append(attrs, attribute.String("progress.desc", event.Desc))
	}
	name := "progress.update"
	if event.Done {
		name = "progress.done"
	}
	r.span.AddEvent(name, trace.WithTimestamp(event.TS), trace.WithAttributes(attrs...))
}
