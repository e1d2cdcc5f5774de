package kafka

import (
	// Go Internal Packages
	"net/http"

	// External Packages
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twmb/franz-go/plugin/kprom"
)

// MetricsRegistry hands out one kprom.Metrics per client. kprom keeps the
// vectors of the last client it was hooked into, so clients cannot share a
// Metrics; they share the prometheus registry instead and are told apart by
// the client_id label, which is the kgo ClientID.
type MetricsRegistry struct {
	namespace string
	reg       *prometheus.Registry
}

func NewMetricsRegistry(namespace string) *MetricsRegistry {
	return &MetricsRegistry{namespace: namespace, reg: prometheus.NewRegistry()}
}

// ForClient returns fresh hooks for a single kgo client.
func (m *MetricsRegistry) ForClient() *kprom.Metrics {
	return kprom.NewMetrics(m.namespace, kprom.Registry(m.reg), kprom.WithClientLabel())
}

func (m *MetricsRegistry) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
