// Package metric provides Prometheus metrics for ztctl.
//
// It records client-side request counts and latencies against the
// controller daemon, plus controller inventory gauges, and can write
// them to a node_exporter textfile.
package metric

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ztctl"

// Registry holds all client metrics. Go runtime and process collectors are
// left out: node_exporter already exports them and rejects duplicates from
// textfiles.
type Registry struct {
	registry *prometheus.Registry

	// Request metrics
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	// Controller inventory
	Networks      prometheus.Gauge
	Members       *prometheus.GaugeVec
	ScrapeSuccess prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Requests issued to the controller daemon.",
		}, []string{"code", "method"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Latency of requests to the controller daemon.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method"}),
		RequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "requests_in_flight",
			Help:      "Requests currently waiting for the controller daemon.",
		}),
		Networks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "controller",
			Name:      "networks",
			Help:      "Networks managed by the controller.",
		}),
		Members: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "controller",
			Name:      "members",
			Help:      "Members per network and authorization state.",
		}, []string{"network", "authorized"}),
		ScrapeSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "controller",
			Name:      "scrape_success",
			Help:      "1 if the last inventory collection succeeded.",
		}),
	}

	reg.MustRegister(
		r.RequestsTotal,
		r.RequestDuration,
		r.RequestsInFlight,
		r.Networks,
		r.Members,
		r.ScrapeSuccess,
	)

	return r
}

var (
	globalOnce sync.Once
	global     *Registry
)

// Global returns the process-wide registry.
func Global() *Registry {
	globalOnce.Do(func() {
		global = NewRegistry()
	})
	return global
}

// InstrumentRoundTripper wraps next with request counting, latency and
// in-flight tracking.
func (r *Registry) InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperInFlight(r.RequestsInFlight,
		promhttp.InstrumentRoundTripperCounter(r.RequestsTotal,
			promhttp.InstrumentRoundTripperDuration(r.RequestDuration, next),
		),
	)
}

// SetMembers records the member counts of one network.
func (r *Registry) SetMembers(network string, authorized, unauthorized int) {
	r.Members.WithLabelValues(network, "true").Set(float64(authorized))
	r.Members.WithLabelValues(network, "false").Set(float64(unauthorized))
}

// WriteTextfile writes the registry to path in the text exposition format.
// The file is written atomically so node_exporter never sees a partial file.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
