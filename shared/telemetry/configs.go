package telemetry

// Predefined service configurations
var (
	// OrderingServiceConfig is the telemetry configuration for the ordering service
	OrderingServiceConfig = Config{
		ServiceName:    "ordering-service",
		ServiceVersion: "1.0.0",
	}

	// NotificationWorkerConfig is the telemetry configuration for the notification worker
	NotificationWorkerConfig = Config{
		ServiceName:    "notification-worker",
		ServiceVersion: "1.0.0",
	}
)

// WithOTLPEndpoint sets the OTLP endpoint for a config
func (c Config) WithOTLPEndpoint(endpoint string) Config {
	c.OTLPEndpoint = endpoint
	return c
}
