package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder collects transform and job metrics. It satisfies toc.Recorder.
type Recorder struct {
	reg *prom.Registry

	transformDuration prom.Histogram
	transformResults  *prom.CounterVec
	headings          prom.Histogram
	jobResults        *prom.CounterVec
	queueDepth        prom.Gauge

	latency *Latency
}

// NewRecorder registers the collectors on reg (a fresh registry when nil).
func NewRecorder(reg *prom.Registry, window time.Duration) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	r := &Recorder{
		reg: reg,
		transformDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "doctoc",
			Name:      "transform_duration_seconds",
			Help:      "Duration of a single document TOC transform",
			Buckets:   prom.ExponentialBuckets(0.0001, 4, 8),
		}),
		transformResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "doctoc",
			Name:      "transform_results_total",
			Help:      "Transform calls by outcome",
		}, []string{"outcome"}),
		headings: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "doctoc",
			Name:      "headings_per_document",
			Help:      "Headings found in transformed documents",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
		}),
		jobResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "doctoc",
			Name:      "job_results_total",
			Help:      "Upload jobs by final status",
		}, []string{"status"}),
		queueDepth: prom.NewGauge(prom.GaugeOpts{
			Namespace: "doctoc",
			Name:      "queue_depth",
			Help:      "Upload jobs waiting for a worker",
		}),
		latency: NewLatency(window),
	}
	reg.MustRegister(r.transformDuration, r.transformResults, r.headings, r.jobResults, r.queueDepth)
	return r
}

func (r *Recorder) ObserveTransform(d time.Duration, headings int, outcome string) {
	if r == nil {
		return
	}
	r.transformDuration.Observe(d.Seconds())
	r.transformResults.WithLabelValues(outcome).Inc()
	if headings > 0 {
		r.headings.Observe(float64(headings))
	}
	r.latency.Record(d, headings)
}

func (r *Recorder) IncJobResult(status string) {
	if r == nil {
		return
	}
	r.jobResults.WithLabelValues(status).Inc()
}

func (r *Recorder) SetQueueDepth(n int) {
	if r == nil {
		return
	}
	r.queueDepth.Set(float64(n))
}

// Latency returns the rolling transform latency window.
func (r *Recorder) Latency() *Latency {
	return r.latency
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
