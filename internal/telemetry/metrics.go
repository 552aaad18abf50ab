package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	GenerateRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	PreviewMode      prometheus.Gauge
}

func NewMetrics() *Metrics {
	return &Metrics{
		GenerateRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "animegen_generate_requests_total",
				Help: "Count of relay generate requests by outcome",
			},
			[]string{"outcome"}, // success, degraded, invalid, failure
		),
		UpstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "animegen_upstream_duration_seconds",
				Help:    "Time taken by the upstream transform call",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"result"},
		),
		PreviewMode: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "animegen_preview_mode",
				Help: "1 when the relay runs with the placeholder credential",
			},
		),
	}
}

func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.GenerateRequests, m.UpstreamDuration, m.PreviewMode} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Handler serves the metrics collected in gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveOutcome(outcome string) {
	if m == nil {
		return
	}
	m.GenerateRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveUpstream(d time.Duration, result string) {
	if m == nil {
		return
	}
	m.UpstreamDuration.WithLabelValues(result).Observe(d.Seconds())
}

func (m *Metrics) SetPreviewMode(on bool) {
	if m == nil {
		return
	}
	if on {
		m.PreviewMode.Set(1)
	} else {
		m.PreviewMode.Set(0)
	}
}
