package wsd

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments the sense server. A nil *Metrics records nothing.
type Metrics struct {
	requests   *prometheus.CounterVec
	duration   prometheus.Histogram
	vocabulary prometheus.Gauge
	reloads    *prometheus.CounterVec
}

// NewMetrics creates the server collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wsd_requests_total",
			Help: "Sense requests by result (found, not_found, bad_request, write_error).",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wsd_request_duration_seconds",
			Help:    "Time spent answering a sense request.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		vocabulary: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wsd_vocabulary_entries",
			Help: "Lemmas in the loaded vocabulary.",
		}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wsd_vocabulary_reloads_total",
			Help: "Vocabulary loads by result (ok, failed).",
		}, []string{"result"}),
	}
	reg.MustRegister(m.requests, m.duration, m.vocabulary, m.reloads)
	return m
}

func (m *Metrics) request(result string, started time.Time) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(result).Inc()
	m.duration.Observe(time.Since(started).Seconds())
}

func (m *Metrics) loaded(entries int) {
	if m == nil {
		return
	}
	m.reloads.WithLabelValues("ok").Inc()
	m.vocabulary.Set(float64(entries))
}

func (m *Metrics) loadFailed() {
	if m != nil {
		m.reloads.WithLabelValues("failed").Inc()
	}
}
