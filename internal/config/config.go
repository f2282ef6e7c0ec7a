package config

// Config holds runtime configuration for the server.
type Config struct {
	Port    string
	Data    DataConfig
	Log     LogConfig
	Metrics MetricsConfig
}

// LogConfig selects the slog level and handler format.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port: envOrDefault(envPort, defaultPort),
		Data: loadData(),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Metrics: loadMetrics(),
	}
}
