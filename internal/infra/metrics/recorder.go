// Package metrics exposes feed fetch metrics in the Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/runoshun/issue-feed/internal/domain"
)

const namespace = "issue_feed"

// Fetch results used as the "result" label value.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Ensure Recorder implements domain.FetchRecorder.
var _ domain.FetchRecorder = (*Recorder)(nil)

// Recorder records pipeline runs on its own registry.
type Recorder struct {
	registry      *prometheus.Registry
	fetchTotal    *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	items         *prometheus.GaugeVec
	lastSuccess   *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with a fresh registry.
// Go runtime and process collectors are registered alongside the feed metrics.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		fetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetch_total",
				Help:      "Total upstream fetches by provider and result",
			},
			[]string{"provider", "result"}),
		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "fetch_duration_seconds",
				Help:      "Duration of upstream fetches including filtering",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"provider"}),
		items: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "items",
				Help:      "Number of feed items produced by the last successful fetch",
			},
			[]string{"provider"}),
		lastSuccess: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_success_timestamp_seconds",
				Help:      "Unix time of the last successful fetch",
			},
			[]string{"provider"}),
	}

	r.registry.MustRegister(
		r.fetchTotal,
		r.fetchDuration,
		r.items,
		r.lastSuccess,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveFetch records one pipeline run.
func (r *Recorder) ObserveFetch(provider string, items int, err error, elapsed time.Duration) {
	r.fetchDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
	if err != nil {
		r.fetchTotal.WithLabelValues(provider, ResultError).Inc()
		return
	}
	r.fetchTotal.WithLabelValues(provider, ResultSuccess).Inc()
	r.items.WithLabelValues(provider).Set(float64(items))
	r.lastSuccess.WithLabelValues(provider).SetToCurrentTime()
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
