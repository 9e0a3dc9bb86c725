package providers

import "context"

// Identity is the normalized player identity returned by an upstream
// provider.
type Identity struct {
	SteamID     string
	DisplayName string
	AvatarURL   string
	Public      bool
	Visibility  int
}

// OwnedGame is one normalized entry of an owned-games list. IconHash is the
// upstream-supplied image hash used to derive the icon URL.
type OwnedGame struct {
	AppID           int
	Name            string
	PlaytimeForever int
	IconHash        string
}

// PlayerProvider defines how upstream identity and ownership data is fetched
// and normalized.
type PlayerProvider interface {
	// GetPlayerIdentity resolves an external identifier. A nil identity with
	// nil error means the identifier does not exist.
	GetPlayerIdentity(ctx context.Context, steamID string) (*Identity, error)

	// GetOwnedGames fetches the owned-games list for a public profile. An
	// empty slice is a valid result, not an error.
	GetOwnedGames(ctx context.Context, steamID string) ([]OwnedGame, error)
}
