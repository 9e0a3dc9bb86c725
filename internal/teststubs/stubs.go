package teststubs

import (
	"context"
	"sync/atomic"

	"steam-library-service/internal/domain"
	"steam-library-service/internal/providers"
)

// StubProvider is a test double for providers.PlayerProvider with per-call
// counters, so tests can assert that fresh cache hits skip the upstream.
type StubProvider struct {
	Identity    *providers.Identity
	IdentityErr error
	Games       []providers.OwnedGame
	GamesErr    error

	IdentityCalls atomic.Int32
	GamesCalls    atomic.Int32
}

// GetPlayerIdentity returns the configured identity and error while tracking
// calls.
func (s *StubProvider) GetPlayerIdentity(ctx context.Context, steamID string) (*providers.Identity, error) {
	_ = ctx
	_ = steamID
	s.IdentityCalls.Add(1)
	return s.Identity, s.IdentityErr
}

// GetOwnedGames returns the configured games and error while tracking calls.
func (s *StubProvider) GetOwnedGames(ctx context.Context, steamID string) ([]providers.OwnedGame, error) {
	_ = ctx
	_ = steamID
	s.GamesCalls.Add(1)
	return s.Games, s.GamesErr
}

// PublicIdentity builds a public identity for tests.
func PublicIdentity(steamID, displayName string) *providers.Identity {
	return &providers.Identity{
		SteamID:     steamID,
		DisplayName: displayName,
		AvatarURL:   "https://avatars.example/" + steamID + ".jpg",
		Public:      true,
		Visibility:  3,
	}
}

// PrivateIdentity builds a non-public identity for tests.
func PrivateIdentity(steamID string) *providers.Identity {
	return &providers.Identity{
		SteamID:     steamID,
		DisplayName: "hidden",
		Public:      false,
		Visibility:  1,
	}
}

// StubStore is an in-memory test double for the account store contract.
type StubStore struct {
	Library   domain.Library
	LoadErr   error
	SaveErr   error
	SaveCalls int
}

// Load returns a copy of the configured library.
func (s *StubStore) Load() (domain.Library, error) {
	if s.LoadErr != nil {
		return domain.Library{}, s.LoadErr
	}
	if s.Library.Accounts == nil {
		s.Library = domain.NewLibrary()
	}
	return s.Library, nil
}

// Update applies fn to the in-memory library, mirroring the file store's
// transaction semantics.
func (s *StubStore) Update(fn func(*domain.Library) error) error {
	if s.LoadErr != nil {
		return s.LoadErr
	}
	if s.Library.Accounts == nil {
		s.Library = domain.NewLibrary()
	}
	if err := fn(&s.Library); err != nil {
		return err
	}
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.SaveCalls++
	return nil
}
