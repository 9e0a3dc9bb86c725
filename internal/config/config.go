package config

// Config holds runtime configuration for the server.
type Config struct {
	Port      string
	CacheTTL  Duration
	StorePath string
	Steam     SteamConfig
	Metrics   MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:      envOrDefault(envPort, defaultPort),
		CacheTTL:  durationEnvOrDefault(envCacheTTL, defaultCacheTTL),
		StorePath: envOrDefault(envStorePath, defaultStorePath),
		Steam:     loadSteam(),
		Metrics:   loadMetrics(),
	}
}
