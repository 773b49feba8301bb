package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// detection pipeline.
type Metrics struct {
	DetectionsTotal   *prometheus.CounterVec // labels: tier, model_type
	DetectionErrors   *prometheus.CounterVec // labels: reason={decode,segmentation,internal,timeout}
	Degradations      prometheus.Counter
	DetectionDuration prometheus.Histogram
	AlertsPublished   prometheus.Counter
	ModelLoaded       prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.DetectionsTotal,
		m.DetectionErrors,
		m.Degradations,
		m.DetectionDuration,
		m.AlertsPublished,
		m.ModelLoaded,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		DetectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "troposcan",
			Name:      "detections_total",
			Help:      "Completed detections by risk tier and model variant.",
		}, []string{"tier", "model_type"}),
		DetectionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "troposcan",
			Name:      "detection_errors_total",
			Help:      "Failed detection requests by reason.",
		}, []string{"reason"}),
		Degradations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "troposcan",
			Name:      "model_degradations_total",
			Help:      "Requests degraded from the real model to the fallback variant.",
		}),
		DetectionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "troposcan",
			Name:      "detection_duration_seconds",
			Help:      "Duration of a complete normalize-segment-classify-render run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		AlertsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "troposcan",
			Name:      "alerts_published_total",
			Help:      "Non-low results published to the alerts topic.",
		}),
		ModelLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "troposcan",
			Name:      "model_loaded",
			Help:      "1 when the trained segmentation model is loaded, 0 when running on the fallback.",
		}),
	}
}
