package metrics

// Config holds configuration for the metrics endpoint.
type Config struct {
	// Enabled mounts /metrics on the HTTP server.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Namespace prefixes every metric name.
	Namespace string `mapstructure:"namespace" default:"minions"`
}
