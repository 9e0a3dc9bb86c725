package steam

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"steam-library-service/internal/providers"
)

// Config controls how the Steam client reaches the Web API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client fetches player identity and owned-games data from the Steam Web API
// and maps them to provider models.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
}

// NewClient constructs a Steam client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
	}
}

// GetPlayerIdentity resolves a SteamID via GetPlayerSummaries. An empty
// players list means the id does not exist; that is reported as a nil
// identity, not an error.
func (c *Client) GetPlayerIdentity(ctx context.Context, steamID string) (*providers.Identity, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("steamids", steamID)

	var payload playerSummariesResponse
	if err := c.getJSON(ctx, playerSummariesPath, params, &payload); err != nil {
		return nil, err
	}

	if len(payload.Response.Players) == 0 {
		return nil, nil
	}
	return mapIdentity(payload.Response.Players[0], steamID), nil
}

// GetOwnedGames fetches the owned-games list including app info and played
// free games. An empty list is a valid result.
func (c *Client) GetOwnedGames(ctx context.Context, steamID string) ([]providers.OwnedGame, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("steamid", steamID)
	params.Set("include_appinfo", "true")
	params.Set("include_played_free_games", "true")
	params.Set("format", "json")

	var payload ownedGamesResponse
	if err := c.getJSON(ctx, ownedGamesPath, params, &payload); err != nil {
		return nil, err
	}

	games := make([]providers.OwnedGame, 0, len(payload.Response.Games))
	for _, g := range payload.Response.Games {
		games = append(games, mapOwnedGame(g))
	}
	return games, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, payload any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.URL.RawQuery = params.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &providers.UpstreamError{Provider: providerName, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &providers.UpstreamError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(payload); err != nil {
		return &providers.UpstreamError{Provider: providerName, Message: "decode response: " + err.Error()}
	}
	return nil
}
