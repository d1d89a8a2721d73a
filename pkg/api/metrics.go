package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fortimon/pkg/firmware"
	"fortimon/pkg/plugin"
)

// Metrics exports check outcomes on a registry private to the server.
type Metrics struct {
	registry         *prometheus.Registry
	checksTotal      *prometheus.CounterVec
	updatesAvailable *prometheus.GaugeVec
}

// NewMetrics registers the fortimon collectors under namespace.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		checksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checks_total",
			Help:      "Checks evaluated, by plugin and resulting state",
		}, []string{"plugin", "state"}),
		updatesAvailable: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "firmware_updates_available",
			Help:      "Newer compatible firmware images seen at the last check",
		}, []string{"target"}),
	}
	m.registry.MustRegister(m.checksTotal, m.updatesAvailable)
	return m
}

// Observe records a batch of check results. Failed tasks and discovery results are skipped.
func (m *Metrics) Observe(results []plugin.Result) {
	for _, res := range results {
		if !res.Success || res.State == nil {
			continue
		}
		m.checksTotal.WithLabelValues(res.Plugin, res.State.String()).Inc()

		if res.Plugin != plugin.FirmwarePlugin.Name {
			continue
		}
		for _, metric := range res.Metrics {
			if metric.Name == firmware.MetricUpdatesAvailable {
				m.updatesAvailable.WithLabelValues(res.Target).Set(metric.Value)
			}
		}
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
