// Package metrics exposes Prometheus instrumentation for evaluations.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Evaluation outcomes.
const (
	OutcomeReport       = "report"
	OutcomeInsufficient = "insufficient"
)

// Recorder collects service metrics on its own registry.
type Recorder struct {
	registry     *prometheus.Registry
	evaluations  *prometheus.CounterVec
	duration     prometheus.Histogram
	seriesLength prometheus.Histogram
	errorsTotal  *prometheus.CounterVec
}

// New creates a Recorder with Go runtime and process collectors registered.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantanalyst_evaluations_total",
				Help: "Total number of price series evaluated, by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quantanalyst_evaluation_duration_seconds",
			Help:    "Time spent computing indicators and rendering the report",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		seriesLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quantanalyst_series_length",
			Help:    "Number of prices supplied per evaluation",
			Buckets: []float64{10, 20, 50, 100, 250, 500, 1000, 5000},
		}),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantanalyst_errors_total",
				Help: "Total number of errors encountered, by kind",
			},
			[]string{"kind"},
		),
	}
	reg.MustRegister(
		r.evaluations,
		r.duration,
		r.seriesLength,
		r.errorsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveEvaluation records one evaluation of a series of length n.
func (r *Recorder) ObserveEvaluation(n int, sufficient bool, elapsed time.Duration) {
	outcome := OutcomeReport
	if !sufficient {
		outcome = OutcomeInsufficient
	}
	r.evaluations.WithLabelValues(outcome).Inc()
	r.seriesLength.Observe(float64(n))
	r.duration.Observe(elapsed.Seconds())
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
