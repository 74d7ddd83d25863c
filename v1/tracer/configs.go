package tracer

// Config holds the configuration for the OpenTelemetry tracer.
type Config struct {
	// ServiceName identifies this service in exported traces.
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv is the deployment environment attached to every span,
	// e.g. "production".
	AppEnv string `yaml:"app_env" envconfig:"TRACER_APP_ENV"`

	// EnableExport turns on the OTLP HTTP exporter. The exporter endpoint
	// is configured through the standard OTEL_EXPORTER_OTLP_* environment
	// variables.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`
}
