package router

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "switchback"

// metrics counts how versioned requests dispatch.
// A nil *metrics counts nothing.
type metrics struct {
	dispatched *prometheus.CounterVec
	unmatched  *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		dispatched: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "version_dispatch_total",
			Help:      "Requests dispatched to a versioned route, by method, route template and requested version.",
		}, []string{"method", "template", "version"}),
		unmatched: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "version_unmatched_total",
			Help:      "Requests carrying a version segment that no route served, by method.",
		}, []string{"method"}),
	}
}

func (m *metrics) dispatch(method, template, version string) {
	if m == nil {
		return
	}

	m.dispatched.WithLabelValues(method, template, version).Inc()
}

func (m *metrics) miss(method string) {
	if m == nil {
		return
	}

	m.unmatched.WithLabelValues(method).Inc()
}
