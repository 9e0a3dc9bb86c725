package bot

// AccountResponse mirrors the service's account record payload.
type AccountResponse struct {
	SteamID    string                  `json:"steamid"`
	ProfileURL string                  `json:"profile_url"`
	AvatarURL  string                  `json:"avatar_url"`
	Games      map[string]GameResponse `json:"games"`
}

// GameResponse mirrors one game entry in an account record.
type GameResponse struct {
	AppID           int    `json:"appid"`
	PlaytimeForever int    `json:"playtime_forever"`
	ImgIconURL      string `json:"img_icon_url"`
	HeaderURL       string `json:"header_url"`
	StoreURL        string `json:"store_url"`
}

// SearchResponse mirrors the service's search payload.
type SearchResponse struct {
	ImgIconURL string          `json:"img_icon_url"`
	HeaderURL  string          `json:"header_url"`
	Users      []OwnerResponse `json:"users"`
}

// OwnerResponse is one account that owns the searched game.
type OwnerResponse struct {
	Username   string `json:"username"`
	ProfileURL string `json:"profile_url"`
	Playtime   int    `json:"playtime"`
}
