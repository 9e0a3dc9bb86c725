package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"steam-library-service/internal/domain"
	"steam-library-service/internal/logging"
)

// Store is the read-only persistence contract the search service needs.
type Store interface {
	Load() (domain.Library, error)
}

// Service answers cross-account ownership queries against the cached library
// snapshot. It never talks to the upstream provider.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Search reports which tracked accounts own the game with the given exact
// title. Owners are ordered by playtime, highest first. A title nobody owns
// fails with domain.ErrNotFound.
func (s *Service) Search(ctx context.Context, game string) (domain.SearchResult, error) {
	if game == "" {
		return domain.SearchResult{}, fmt.Errorf("%w: game title is required", domain.ErrValidation)
	}

	lib, err := s.store.Load()
	if err != nil {
		return domain.SearchResult{}, err
	}

	var result domain.SearchResult
	for username, account := range lib.Accounts {
		entry, ok := account.Games[game]
		if !ok {
			continue
		}
		if result.ImgIconURL == "" && entry.ImgIconURL != "" {
			result.ImgIconURL = entry.ImgIconURL
		}
		if result.HeaderURL == "" && entry.HeaderURL != "" {
			result.HeaderURL = entry.HeaderURL
		}
		result.Users = append(result.Users, domain.Owner{
			Username:   username,
			ProfileURL: account.ProfileURL,
			Playtime:   entry.PlaytimeForever,
		})
	}

	if len(result.Users) == 0 {
		return domain.SearchResult{}, fmt.Errorf("%w: no tracked account owns %q", domain.ErrNotFound, game)
	}

	sort.SliceStable(result.Users, func(i, j int) bool {
		if result.Users[i].Playtime != result.Users[j].Playtime {
			return result.Users[i].Playtime > result.Users[j].Playtime
		}
		return result.Users[i].Username < result.Users[j].Username
	})

	logging.Info(logging.FromContext(ctx, s.logger), "game search served",
		logging.FieldGame, game,
		logging.FieldCount, len(result.Users),
	)
	return result, nil
}
