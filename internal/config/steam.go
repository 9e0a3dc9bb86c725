package config

const (
	envSteamBaseURL = "STEAM_BASE_URL"
	envSteamAPIKey  = "STEAM_API_KEY"

	defaultSteamBaseURL = "https://api.steampowered.com"
)

// SteamConfig controls how we talk to the Steam Web API.
type SteamConfig struct {
	BaseURL string
	APIKey  string
}

func loadSteam() SteamConfig {
	return SteamConfig{
		BaseURL: envOrDefault(envSteamBaseURL, defaultSteamBaseURL),
		APIKey:  envOrDefault(envSteamAPIKey, ""),
	}
}
