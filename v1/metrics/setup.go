package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and HTTP server responsible
// for exposing application metrics.
//
// This structure provides the components needed to register metrics
// collectors and serve them via the /metrics HTTP endpoint for Prometheus
// scraping.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each service maintains its own isolated registry to prevent metric
	// name collisions.
	Registry *prometheus.Registry

	// registerer is the registry wrapped with the constant service label.
	registerer prometheus.Registerer
}

// NewMetrics initializes and returns a new instance of the Metrics struct.
// It sets up a dedicated Prometheus registry, optionally registers default
// system collectors, wraps all metrics with a constant `service` label, and
// creates an HTTP server exposing the /metrics endpoint.
//
// Example:
//
//	cfg := metrics.Config{
//	    Address:                 ":9090",
//	    ServiceName:             "lock-service",
//	    EnableDefaultCollectors: true,
//	}
//	m := metrics.NewMetrics(cfg)
//	obs := metrics.NewLockObserver(m.Registerer())
//	go m.Server.ListenAndServe()
//
// Access metrics at: http://localhost:9090/metrics
func NewMetrics(cfg Config) *Metrics {
	// An isolated registry avoids metric collisions when multiple services
	// run in the same process.
	registry := prometheus.NewRegistry()

	// All metrics emitted by this service automatically include the label:
	//   service="<cfg.ServiceName>"
	var registerer prometheus.Registerer = registry
	if cfg.ServiceName != "" {
		registerer = prometheus.WrapRegistererWith(
			prometheus.Labels{"service": cfg.ServiceName},
			registry,
		)
	}

	m := &Metrics{
		Registry:   registry,
		registerer: registerer,
	}

	// GoCollector: memory usage, goroutines, GC stats
	// ProcessCollector: CPU, file descriptors, memory stats
	// BuildInfoCollector: binary version/build info
	if cfg.EnableDefaultCollectors {
		registerer.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}

	return m
}

// Registerer returns the service-labeled registerer new collectors should
// register through.
func (m *Metrics) Registerer() prometheus.Registerer {
	return m.registerer
}
