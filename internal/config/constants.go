package config

import "time"

const (
	envPort         = "PORT"
	envCacheTTL     = "CACHE_TTL"
	envStorePath    = "STORE_PATH"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort = "5000"
	// How long a cached account record is trusted before the next lookup
	// re-fetches from Steam.
	defaultCacheTTL    = Duration(time.Hour)
	defaultStorePath   = "games.json"
	defaultMetricsPort = "9090"
)
