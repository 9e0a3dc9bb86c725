package steam

import "steam-library-service/internal/providers"

func mapIdentity(p playerSummary, steamID string) *providers.Identity {
	// The summaries endpoint echoes the id, but fall back to the requested
	// one if upstream omits it.
	id := p.SteamID
	if id == "" {
		id = steamID
	}
	name := p.PersonaName
	if name == "" {
		name = "Unknown"
	}
	return &providers.Identity{
		SteamID:     id,
		DisplayName: name,
		AvatarURL:   p.AvatarFull,
		Public:      p.CommunityVisibilityState == visibilityPublic,
		Visibility:  p.CommunityVisibilityState,
	}
}

func mapOwnedGame(g ownedGame) providers.OwnedGame {
	return providers.OwnedGame{
		AppID:           g.AppID,
		Name:            g.Name,
		PlaytimeForever: g.PlaytimeForever,
		IconHash:        g.ImgIconURL,
	}
}
