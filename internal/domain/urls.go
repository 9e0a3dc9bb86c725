package domain

import (
	"fmt"
	"strings"
)

// ProfileURL derives the community profile URL from a SteamID.
func ProfileURL(steamID string) string {
	return fmt.Sprintf("https://steamcommunity.com/profiles/%s", steamID)
}

// IconURL derives the game icon URL from an appid and upstream icon hash.
func IconURL(appID int, iconHash string) string {
	return fmt.Sprintf("http://media.steampowered.com/steamcommunity/public/images/apps/%d/%s.jpg", appID, iconHash)
}

// HeaderURL derives the store header image URL from an appid.
func HeaderURL(appID int) string {
	return fmt.Sprintf("https://steamcdn-a.akamaihd.net/steam/apps/%d/header.jpg", appID)
}

// StoreURL derives the store page URL from an appid.
func StoreURL(appID int) string {
	return fmt.Sprintf("https://store.steampowered.com/app/%d/", appID)
}

// NormalizeUsername converts an upstream display name into a store key.
// Spaces become underscores so keys survive URL paths and bot commands.
func NormalizeUsername(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}
