package steam

import "time"

const (
	defaultBaseURL     = "https://api.steampowered.com"
	defaultHTTPTimeout = 10 * time.Second

	playerSummariesPath = "/ISteamUser/GetPlayerSummaries/v2/"
	ownedGamesPath      = "/IPlayerService/GetOwnedGames/v1/"

	// communityvisibilitystate value for a fully public profile.
	visibilityPublic = 3
)
