package config

import "time"

const (
	envPort         = "PORT"
	envDataBackend  = "DATA_BACKEND"
	envDataDir      = "DATA_DIR"
	envSQLitePath   = "SQLITE_PATH"
	envLoadTimeout  = "LOAD_TIMEOUT"
	envLoadRetries  = "LOAD_RETRIES"
	envLoadBackoff  = "LOAD_RETRY_BACKOFF"
	envLogLevel     = "LOG_LEVEL"
	envLogFormat    = "LOG_FORMAT"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort        = "4000"
	defaultDataBackend = BackendCSV
	defaultDataDir     = "data"
	defaultSQLitePath  = "data/penalties.db"
	// Upper bound on one chart request, including every season table load.
	defaultLoadTimeout = 5 * Duration(time.Second)
	defaultLoadRetries = 3
	defaultLoadBackoff = 50 * Duration(time.Millisecond)
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
	defaultMetricsPort = "9090"
	defaultServiceName = "nhl-penalty-service"
)
