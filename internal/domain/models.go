package domain

import (
	"time"

	"steam-library-service/internal/timeutil"
)

// Game is the cached, derived view of one owned game. The URL fields are pure
// functions of AppID and the upstream icon hash; they are never hand-edited.
type Game struct {
	AppID           int    `json:"appid"`
	PlaytimeForever int    `json:"playtime_forever"`
	ImgIconURL      string `json:"img_icon_url"`
	HeaderURL       string `json:"header_url"`
	StoreURL        string `json:"store_url"`
}

// Account is the cached snapshot of one tracked user's profile and library.
// Games maps game name to its record and is replaced wholesale on refresh,
// never merged in place.
type Account struct {
	SteamID     string          `json:"steamid"`
	ProfileURL  string          `json:"profile_url"`
	AvatarURL   string          `json:"avatar_url"`
	Games       map[string]Game `json:"games"`
	LastUpdated string          `json:"last_updated"`
}

// Library is the root aggregate persisted as a single snapshot: username key
// (case-sensitive) to account record.
type Library struct {
	Accounts map[string]Account `json:"accounts"`
}

// NewLibrary returns an empty library ready for inserts.
func NewLibrary() Library {
	return Library{Accounts: make(map[string]Account)}
}

// FreshAt reports whether the record was refreshed within ttl of now.
// A missing or unparseable last_updated is always stale; the boundary at
// exactly ttl is stale.
func (a Account) FreshAt(now time.Time, ttl time.Duration) bool {
	if a.LastUpdated == "" {
		return false
	}
	last, err := timeutil.ParseTimestamp(a.LastUpdated)
	if err != nil {
		return false
	}
	return now.Sub(last) < ttl
}

// Owner is one search match: an account that owns the searched game.
type Owner struct {
	Username   string `json:"username"`
	ProfileURL string `json:"profile_url"`
	Playtime   int    `json:"playtime"`
}

// SearchResult aggregates the owners of a game ranked by playtime, plus
// best-effort shared artwork taken from the first matching record seen.
type SearchResult struct {
	ImgIconURL string  `json:"img_icon_url"`
	HeaderURL  string  `json:"header_url"`
	Users      []Owner `json:"users"`
}
