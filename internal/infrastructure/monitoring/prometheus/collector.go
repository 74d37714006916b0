// Package prometheus wraps prometheus/client_golang behind a small collector
// type so that application code registers metrics in one place and the HTTP
// layer can expose them on /metrics.
package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a dedicated prometheus.Registry.  Using a private registry
// rather than the package-global default keeps tests isolated: each test can
// construct its own Collector without duplicate-registration panics.
type Collector struct {
	namespace string
	registry  *prometheus.Registry
}

// NewCollector creates a Collector with the given metric namespace.
// Process and Go runtime collectors are always registered.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	registry.MustRegister(prometheus.NewGoCollector())
	return &Collector{namespace: namespace, registry: registry}
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// NewCounterVec registers and returns a namespaced counter vector.
func (c *Collector) NewCounterVec(name, help string, labels ...string) *prometheus.CounterVec {
	cv := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: c.namespace,
		Name:      name,
		Help:      help,
	}, labels)
	c.registry.MustRegister(cv)
	return cv
}

// NewGaugeVec registers and returns a namespaced gauge vector.
func (c *Collector) NewGaugeVec(name, help string, labels ...string) *prometheus.GaugeVec {
	gv := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: c.namespace,
		Name:      name,
		Help:      help,
	}, labels)
	c.registry.MustRegister(gv)
	return gv
}

// NewHistogramVec registers and returns a namespaced histogram vector.
func (c *Collector) NewHistogramVec(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}
	hv := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: c.namespace,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}, labels)
	c.registry.MustRegister(hv)
	return hv
}
