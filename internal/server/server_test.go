package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"steam-library-service/internal/config"
	"steam-library-service/internal/domain"
	"steam-library-service/internal/providers"
	"steam-library-service/internal/teststubs"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port:      "0",
		CacheTTL:  time.Hour,
		StorePath: filepath.Join(t.TempDir(), "games.json"),
		Metrics:   config.MetricsConfig{Enabled: false},
	}
}

func TestServerRegisterAndResolve(t *testing.T) {
	provider := &teststubs.StubProvider{
		Identity: teststubs.PublicIdentity("76561197960287930", "Rabscuttle"),
		Games: []providers.OwnedGame{
			{AppID: 70, Name: "Half-Life", PlaytimeForever: 120, IconHash: "h70"},
			{AppID: 440, Name: "Team Fortress 2", PlaytimeForever: 30, IconHash: "h440"},
		},
	}
	srv := newServerWithProvider(testConfig(t), nil, provider)
	router := srv.Handler()

	registerRec := httptest.NewRecorder()
	registerReq := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"steamid":"76561197960287930"}`))
	router.ServeHTTP(registerRec, registerReq)

	if registerRec.Code != http.StatusCreated {
		t.Fatalf("expected 201 from /register, got %d: %s", registerRec.Code, registerRec.Body.String())
	}

	userRec := httptest.NewRecorder()
	router.ServeHTTP(userRec, httptest.NewRequest(http.MethodGet, "/user/Rabscuttle", nil))

	if userRec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /user, got %d: %s", userRec.Code, userRec.Body.String())
	}
	var account domain.Account
	if err := json.NewDecoder(userRec.Body).Decode(&account); err != nil {
		t.Fatalf("failed to decode user response: %v", err)
	}
	if len(account.Games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(account.Games))
	}

	searchRec := httptest.NewRecorder()
	router.ServeHTTP(searchRec, httptest.NewRequest(http.MethodGet, "/search?game=Half-Life", nil))

	if searchRec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /search, got %d: %s", searchRec.Code, searchRec.Body.String())
	}
	var result domain.SearchResult
	if err := json.NewDecoder(searchRec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode search response: %v", err)
	}
	if len(result.Users) != 1 || result.Users[0].Username != "Rabscuttle" {
		t.Fatalf("unexpected owners: %+v", result.Users)
	}
}

func TestServerHealthAndReady(t *testing.T) {
	srv := newServerWithProvider(testConfig(t), nil, &teststubs.StubProvider{})
	router := srv.Handler()

	healthRec := httptest.NewRecorder()
	router.ServeHTTP(healthRec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if healthRec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", healthRec.Code)
	}

	readyRec := httptest.NewRecorder()
	router.ServeHTTP(readyRec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if readyRec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /ready, got %d", readyRec.Code)
	}
}

func TestServerNotReadyOnCorruptSnapshot(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(cfg.StorePath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to plant corrupt snapshot: %v", err)
	}

	srv := newServerWithProvider(cfg, nil, &teststubs.StubProvider{})

	readyRec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(readyRec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if readyRec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 from /ready with corrupt snapshot, got %d", readyRec.Code)
	}
}

func TestNewConstructsServer(t *testing.T) {
	cfg := testConfig(t)
	srv := New(cfg, nil)
	if srv == nil || srv.Handler() == nil {
		t.Fatalf("expected server with handler")
	}
}

type stubHTTPServer struct {
	addr          string
	handler       http.Handler
	listenCalls   int
	shutdownCalls int
	listenErr     error
	shutdownErr   error
}

func (s *stubHTTPServer) ListenAndServe() error {
	s.listenCalls++
	return s.listenErr
}

func (s *stubHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	s.shutdownCalls++
	return s.shutdownErr
}

func (s *stubHTTPServer) Addr() string {
	return s.addr
}

func (s *stubHTTPServer) Handler() http.Handler {
	return s.handler
}

type blockingHTTPServer struct {
	shutdownCalls int
	unblock       chan struct{}
}

func (s *blockingHTTPServer) ListenAndServe() error { return nil }

func (s *blockingHTTPServer) Shutdown(ctx context.Context) error {
	s.shutdownCalls++
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.unblock:
		return nil
	}
}

func (s *blockingHTTPServer) Addr() string          { return ":0" }
func (s *blockingHTTPServer) Handler() http.Handler { return http.NewServeMux() }

func TestGracefulShutdownCallsShutdown(t *testing.T) {
	httpSrv := &stubHTTPServer{}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv)
	srv.gracefulShutdown()

	if httpSrv.shutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.shutdownCalls)
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	blocking := &blockingHTTPServer{unblock: make(chan struct{})}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, blocking)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.shutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.shutdownCalls)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

type errHTTPServer struct {
	shutdownCalls int
}

func (e *errHTTPServer) ListenAndServe() error {
	return errors.New("listen failure")
}

func (e *errHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	e.shutdownCalls++
	return nil
}

func (e *errHTTPServer) Addr() string          { return ":0" }
func (e *errHTTPServer) Handler() http.Handler { return http.NewServeMux() }

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, &errHTTPServer{})

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	stop := func() {
		close(stopCalled)
		wg.Done()
	}

	srv.startServer(stop)

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}

	wg.Wait()
}

type closeableHTTPServer struct {
	shutdownCalls int
}

func (c *closeableHTTPServer) ListenAndServe() error {
	return http.ErrServerClosed
}

func (c *closeableHTTPServer) Shutdown(ctx context.Context) error {
	_ = ctx
	c.shutdownCalls++
	return nil
}

func (c *closeableHTTPServer) Addr() string          { return ":0" }
func (c *closeableHTTPServer) Handler() http.Handler { return http.NewServeMux() }

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpSrv := &closeableHTTPServer{}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	// Let Start be invoked.
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	if httpSrv.shutdownCalls != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.shutdownCalls)
	}
}
