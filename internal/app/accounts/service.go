package accounts

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"steam-library-service/internal/domain"
	"steam-library-service/internal/logging"
	"steam-library-service/internal/metrics"
	"steam-library-service/internal/providers"
	"steam-library-service/internal/timeutil"
)

// DefaultCacheTTL is the freshness window applied when none is configured.
const DefaultCacheTTL = time.Hour

// Store is the persistence contract the service needs: snapshot reads plus a
// serialized read-modify-write transaction.
type Store interface {
	Load() (domain.Library, error)
	Update(fn func(*domain.Library) error) error
}

// Service is the refresh orchestrator: it decides whether cached account data
// is trustworthy, re-fetches from the upstream provider when it is not, and
// owns the registration workflow.
type Service struct {
	store    Store
	provider providers.PlayerProvider
	ttl      time.Duration
	logger   *slog.Logger
	recorder *metrics.Recorder
	now      func() time.Time
}

// NewService constructs an account service. A non-positive ttl falls back to
// DefaultCacheTTL.
func NewService(store Store, provider providers.PlayerProvider, ttl time.Duration, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{
		store:    store,
		provider: provider,
		ttl:      ttl,
		logger:   logger,
		recorder: recorder,
		now:      time.Now,
	}
}

// Resolve returns the tracked account for username, serving the cached record
// when it is fresh and refreshing from upstream otherwise. An explicit
// steamID takes precedence over the stored one; with neither available the
// lookup fails with domain.ErrNotFound.
func (s *Service) Resolve(ctx context.Context, username, steamID string) (domain.Account, error) {
	lib, err := s.store.Load()
	if err != nil {
		return domain.Account{}, err
	}

	cached, tracked := lib.Accounts[username]
	if tracked && cached.FreshAt(s.now(), s.ttl) {
		logging.Info(logging.FromContext(ctx, s.logger), "served cached account",
			logging.FieldUsername, username,
			logging.FieldCount, len(cached.Games),
		)
		return cached, nil
	}

	id := steamID
	if id == "" {
		if !tracked {
			return domain.Account{}, fmt.Errorf("%w: username %q is not tracked and no steamid was given", domain.ErrNotFound, username)
		}
		id = cached.SteamID
	}

	identity, err := s.identify(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	// The upstream display name, not the caller's input, keys the record on
	// first discovery.
	return s.refresh(ctx, identity, "")
}

// Register creates a new tracked account for steamID, optionally under a
// caller-chosen username, and immediately populates its game library.
func (s *Service) Register(ctx context.Context, steamID, username string) (domain.Account, error) {
	if strings.TrimSpace(steamID) == "" {
		return domain.Account{}, fmt.Errorf("%w: steamid is required", domain.ErrValidation)
	}

	identity, err := s.identify(ctx, steamID)
	if err != nil {
		return domain.Account{}, err
	}

	key := username
	if key == "" {
		key = domain.NormalizeUsername(identity.DisplayName)
	}

	err = s.store.Update(func(lib *domain.Library) error {
		if _, exists := lib.Accounts[key]; exists {
			return fmt.Errorf("%w: %s", domain.ErrConflict, key)
		}
		lib.Accounts[key] = domain.Account{
			SteamID:     identity.SteamID,
			ProfileURL:  domain.ProfileURL(identity.SteamID),
			AvatarURL:   identity.AvatarURL,
			Games:       make(map[string]domain.Game),
			LastUpdated: timeutil.FormatTimestamp(s.now()),
		}
		return nil
	})
	if err != nil {
		return domain.Account{}, err
	}

	logging.Info(logging.FromContext(ctx, s.logger), "account registered",
		logging.FieldUsername, key,
		logging.FieldSteamID, identity.SteamID,
	)

	// Populate the library before returning; the registered key stays
	// authoritative even when it differs from the display name.
	return s.refresh(ctx, identity, key)
}

// identify resolves a SteamID to a public identity or fails with
// domain.ErrProfileUnavailable. Nothing is persisted on failure.
func (s *Service) identify(ctx context.Context, steamID string) (*providers.Identity, error) {
	identity, err := s.provider.GetPlayerIdentity(ctx, steamID)
	if err != nil {
		return nil, err
	}
	if identity == nil || !identity.Public {
		return nil, fmt.Errorf("%w: steamid %s", domain.ErrProfileUnavailable, steamID)
	}
	return identity, nil
}

// refresh fetches the owned-games list, rebuilds the record from scratch, and
// persists it in one store transaction. key overrides the record key; when
// empty the normalized display name is used.
func (s *Service) refresh(ctx context.Context, identity *providers.Identity, key string) (domain.Account, error) {
	start := time.Now()
	record, err := s.doRefresh(ctx, identity, key)
	s.recorder.RecordRefresh(time.Since(start), err)
	return record, err
}

func (s *Service) doRefresh(ctx context.Context, identity *providers.Identity, key string) (domain.Account, error) {
	owned, err := s.provider.GetOwnedGames(ctx, identity.SteamID)
	if err != nil {
		return domain.Account{}, err
	}

	// Descending playtime; stable keeps upstream order on ties.
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].PlaytimeForever > owned[j].PlaytimeForever
	})

	games := make(map[string]domain.Game, len(owned))
	for _, g := range owned {
		games[g.Name] = domain.Game{
			AppID:           g.AppID,
			PlaytimeForever: g.PlaytimeForever,
			ImgIconURL:      domain.IconURL(g.AppID, g.IconHash),
			HeaderURL:       domain.HeaderURL(g.AppID),
			StoreURL:        domain.StoreURL(g.AppID),
		}
	}

	if key == "" {
		key = domain.NormalizeUsername(identity.DisplayName)
	}
	record := domain.Account{
		SteamID:     identity.SteamID,
		ProfileURL:  domain.ProfileURL(identity.SteamID),
		AvatarURL:   identity.AvatarURL,
		Games:       games,
		LastUpdated: timeutil.FormatTimestamp(s.now()),
	}

	err = s.store.Update(func(lib *domain.Library) error {
		lib.Accounts[key] = record
		return nil
	})
	if err != nil {
		return domain.Account{}, err
	}

	logging.Info(logging.FromContext(ctx, s.logger), "account refreshed",
		logging.FieldUsername, key,
		logging.FieldSteamID, identity.SteamID,
		logging.FieldCount, len(games),
	)
	return record, nil
}
