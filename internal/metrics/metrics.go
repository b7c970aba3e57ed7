// Package metrics collects request metrics of the status handler
// in a private prometheus registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "httpstatus"

type Metrics struct {
	registry   *prometheus.Registry
	collectors []prometheus.Collector

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func New() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Number of handled requests by response status code and method.",
		}, []string{"code", "method"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Duration of handled requests by method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	for _, cs := range []prometheus.Collector{
		m.requests,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := m.Register(cs); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) Register(cs prometheus.Collector) error {
	if err := m.registry.Register(cs); err != nil {
		return err
	}

	m.collectors = append(m.collectors, cs)

	return nil
}

func (m *Metrics) UnregisterAll() {
	for _, cs := range m.collectors {
		m.registry.Unregister(cs)
	}

	m.collectors = nil
}

// Middleware instruments next with the request counter and the
// duration histogram.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerDuration(m.duration,
		promhttp.InstrumentHandlerCounter(m.requests, next),
	)
}

// Requests returns the request counter for the given status code
// and lower case method label.
func (m *Metrics) Requests(code, method string) prometheus.Counter {
	return m.requests.WithLabelValues(code, method)
}

func (m *Metrics) HTTPHandler() http.Handler {
	return promhttp.InstrumentMetricHandler(m.registry, promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
