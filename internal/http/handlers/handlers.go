package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"

	"steam-library-service/internal/app/accounts"
	"steam-library-service/internal/app/search"
	"steam-library-service/internal/domain"
	"steam-library-service/internal/providers"
	"steam-library-service/internal/store"
)

// Handler wires HTTP routes to the domain services.
type Handler struct {
	accounts *accounts.Service
	search   *search.Service
	logger   *slog.Logger
	statusFn func() error
}

// NewHandler constructs a Handler. statusFn reports readiness; nil means
// always ready.
func NewHandler(accountsSvc *accounts.Service, searchSvc *search.Service, logger *slog.Logger, statusFn func() error) *Handler {
	return &Handler{
		accounts: accountsSvc,
		search:   searchSvc,
		logger:   logger,
		statusFn: statusFn,
	}
}

func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.statusFn != nil {
		if err := h.statusFn(); err != nil {
			writeError(w, r, nethttp.StatusServiceUnavailable, err.Error(), h.logger)
			return
		}
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// User resolves a tracked account's game library, refreshing from upstream
// when the cached record is stale.
func (h *Handler) User(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/user")
	raw = strings.Trim(raw, "/")
	username, err := url.PathUnescape(raw)
	if err != nil || username == "" || strings.Contains(username, "/") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid username", h.logger)
		return
	}

	account, err := h.accounts.Resolve(r.Context(), username, r.URL.Query().Get("steamid"))
	if err != nil {
		h.writeDomainError(w, r, err, nethttp.StatusBadRequest)
		return
	}
	writeJSON(w, nethttp.StatusOK, account, h.logger)
}

// Search reports which tracked accounts own a game.
func (h *Handler) Search(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	result, err := h.search.Search(r.Context(), r.URL.Query().Get("game"))
	if err != nil {
		h.writeDomainError(w, r, err, nethttp.StatusNotFound)
		return
	}
	writeJSON(w, nethttp.StatusOK, result, h.logger)
}

type registerRequest struct {
	SteamID  string `json:"steamid"`
	Username string `json:"username"`
}

// Register starts tracking a new account and populates its library.
func (h *Handler) Register(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodPost {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}

	account, err := h.accounts.Register(r.Context(), req.SteamID, req.Username)
	if err != nil {
		h.writeDomainError(w, r, err, nethttp.StatusBadRequest)
		return
	}
	writeJSON(w, nethttp.StatusCreated, account, h.logger)
}

// writeDomainError maps service errors onto HTTP statuses. notFoundStatus
// controls the ErrNotFound mapping: a missing search result is 404, but a
// username that cannot be resolved without a steamid is a bad request.
func (h *Handler) writeDomainError(w nethttp.ResponseWriter, r *nethttp.Request, err error, notFoundStatus int) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, notFoundStatus, err.Error(), h.logger)
	case errors.Is(err, domain.ErrProfileUnavailable):
		writeError(w, r, nethttp.StatusNotFound, err.Error(), h.logger)
	case errors.Is(err, domain.ErrConflict):
		writeError(w, r, nethttp.StatusConflict, err.Error(), h.logger)
	case errors.Is(err, store.ErrCorruptSnapshot):
		writeError(w, r, nethttp.StatusInternalServerError, "library snapshot unavailable", h.logger)
	default:
		if upstream, ok := providers.AsUpstreamError(err); ok {
			writeError(w, r, nethttp.StatusBadGateway, upstream.Error(), h.logger)
			return
		}
		writeError(w, r, nethttp.StatusInternalServerError, "internal error", h.logger)
	}
}
