package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultClientTimeout = 15 * time.Second

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIClient talks to the library service's HTTP API.
type APIClient struct {
	baseURL string
	http    httpDoer
}

// NewAPIClient constructs a client for the service at baseURL. A nil
// httpClient gets a default with a timeout.
func NewAPIClient(baseURL string, httpClient httpDoer) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultClientTimeout}
	}
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// APIError is a non-success response from the service, with the body text
// preserved so the bot can relay it.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Register asks the service to start tracking a Steam account.
func (c *APIClient) Register(ctx context.Context, steamID string) (AccountResponse, error) {
	payload := fmt.Sprintf(`{"steamid":%q}`, steamID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/register", strings.NewReader(payload))
	if err != nil {
		return AccountResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var account AccountResponse
	if err := c.do(req, http.StatusCreated, &account); err != nil {
		return AccountResponse{}, err
	}
	return account, nil
}

// User fetches a tracked account's game library.
func (c *APIClient) User(ctx context.Context, username string) (AccountResponse, error) {
	target := c.baseURL + "/user/" + url.PathEscape(username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return AccountResponse{}, err
	}

	var account AccountResponse
	if err := c.do(req, http.StatusOK, &account); err != nil {
		return AccountResponse{}, err
	}
	return account, nil
}

// Search asks which tracked accounts own a game.
func (c *APIClient) Search(ctx context.Context, game string) (SearchResponse, error) {
	target := c.baseURL + "/search?game=" + url.QueryEscape(game)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return SearchResponse{}, err
	}

	var result SearchResponse
	if err := c.do(req, http.StatusOK, &result); err != nil {
		return SearchResponse{}, err
	}
	return result, nil
}

func (c *APIClient) do(req *http.Request, wantStatus int, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
