package metrics

// Config holds the configuration for the Prometheus metrics server.
type Config struct {
	// Address is the listen address of the /metrics HTTP endpoint,
	// e.g. ":9090".
	Address string `yaml:"address" envconfig:"METRICS_ADDRESS"`

	// ServiceName is attached as a constant "service" label to every metric
	// emitted through this registry.
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME"`

	// EnableDefaultCollectors registers the standard Go, process, and build
	// info collectors.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" envconfig:"METRICS_ENABLE_DEFAULT_COLLECTORS"`
}
