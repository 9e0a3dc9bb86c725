package http

import (
	nethttp "net/http"

	"steam-library-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/user/", handler.User)
	mux.HandleFunc("/search", handler.Search)
	mux.HandleFunc("/register", handler.Register)
	return mux
}
