package steam

const providerName = "steam"

type playerSummariesResponse struct {
	Response playersPayload `json:"response"`
}

type playersPayload struct {
	Players []playerSummary `json:"players"`
}

type playerSummary struct {
	SteamID                  string `json:"steamid"`
	PersonaName              string `json:"personaname"`
	AvatarFull               string `json:"avatarfull"`
	CommunityVisibilityState int    `json:"communityvisibilitystate"`
	ProfileURL               string `json:"profileurl"`
}

type ownedGamesResponse struct {
	Response ownedGamesPayload `json:"response"`
}

type ownedGamesPayload struct {
	GameCount int         `json:"game_count"`
	Games     []ownedGame `json:"games"`
}

type ownedGame struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int    `json:"playtime_forever"`
	ImgIconURL      string `json:"img_icon_url"`
}
