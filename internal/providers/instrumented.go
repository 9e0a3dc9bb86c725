package providers

import (
	"context"
	"log/slog"
	"time"

	"steam-library-service/internal/logging"
	"steam-library-service/internal/metrics"
)

// instrumentedProvider wraps a PlayerProvider with per-call metrics and
// structured logging. It adds no retry behavior.
type instrumentedProvider struct {
	inner    PlayerProvider
	name     string
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// NewInstrumentedProvider decorates the given provider. A nil recorder or
// logger disables the corresponding output.
func NewInstrumentedProvider(inner PlayerProvider, name string, logger *slog.Logger, recorder *metrics.Recorder) PlayerProvider {
	return &instrumentedProvider{
		inner:    inner,
		name:     name,
		logger:   logger,
		recorder: recorder,
	}
}

func (p *instrumentedProvider) GetPlayerIdentity(ctx context.Context, steamID string) (*Identity, error) {
	start := time.Now()
	identity, err := p.inner.GetPlayerIdentity(ctx, steamID)
	p.record(ctx, "player_identity", time.Since(start), err)
	return identity, err
}

func (p *instrumentedProvider) GetOwnedGames(ctx context.Context, steamID string) ([]OwnedGame, error) {
	start := time.Now()
	games, err := p.inner.GetOwnedGames(ctx, steamID)
	p.record(ctx, "owned_games", time.Since(start), err)
	return games, err
}

func (p *instrumentedProvider) record(ctx context.Context, call string, duration time.Duration, err error) {
	p.recorder.RecordProviderAttempt(p.name, duration, err)
	if err != nil {
		logger := logging.FromContext(ctx, p.logger)
		logging.Error(logger, "provider call failed", err,
			logging.FieldProvider, p.name,
			"call", call,
			logging.FieldDurationMS, duration.Milliseconds(),
		)
	}
}
