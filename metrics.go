package goprogress

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusReporter exports progress via Prometheus. It owns all collectors
// for per-sequence counts, completion ratios and sequence durations,
// partitioned by the event description.
type PrometheusReporter struct {
	updates   *prometheus.CounterVec
	current   *prometheus.GaugeVec
	ratio     *prometheus.GaugeVec
	completed *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewPrometheusReporter registers the collectors against the provided
// registry. A nil registry falls back to prometheus.DefaultRegisterer.
func NewPrometheusReporter(reg prometheus.Registerer) (*PrometheusReporter, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &PrometheusReporter{
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "progress_updates_total",
			Help: "Total progress updates observed, partitioned by sequence description.",
		}, []string{"desc"}),
		current: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "progress_current",
			Help: "Elements produced so far for the sequence.",
		}, []string{"desc"}),
		ratio: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "progress_completion_ratio",
			Help: "Fraction of the sequence completed (0-1); absent when the total is unknown.",
		}, []string{"desc"}),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "progress_sequences_completed_total",
			Help: "Sequences that have finished (exhausted, failed or abandoned).",
		}, []string{"desc"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "progress_sequence_duration_seconds",
			Help:    "Wall time per finished sequence.",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"desc"}),
	}
	for _, collector := range []prometheus.Collector{
		r.updates,
		r.current,
		r.ratio,
		r.completed,
		r.duration,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register progress collector: %w", err)
		}
	}
	return r, nil
}

// Report updates the collectors from the event. Safe for concurrent use.
func (r *PrometheusReporter) Report(event Event) {
	desc := event.Desc
	if desc == "" {
		desc = "unnamed"
	}
	if event.Done {
		r.completed.WithLabelValues(desc).Inc()
		r.duration.WithLabelValues(desc).Observe(event.Elapsed.Seconds())
		r.current.WithLabelValues(desc).Set(float64(event.Current))
		return
	}
	r.updates.WithLabelValues(desc).Inc()
	r.current.WithLabelValues(desc).Set(float64(event.Current))
	if event.Total > 0 {
		r.ratio.WithLabelValues(desc).Set(event.Percent / 100)
	}
}
