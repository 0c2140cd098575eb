// Package server exposes brickbreaker over HTTP: account endpoints, the
// leaderboard, a PNG preview, Prometheus metrics and websocket game
// sessions that stream one frame per tick.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/brickbreaker/internal/account"
	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/session"
	"github.com/vovakirdan/brickbreaker/internal/storage"
)

// shutdownTimeout bounds how long Shutdown waits for open requests.
const shutdownTimeout = 10 * time.Second

// Store is the persistence the server needs.
type Store interface {
	account.UserStore
	session.ScoreSubmitter
	Leaderboard(limit int) ([]storage.LeaderboardEntry, error)
}

// Config holds the server dependencies.
type Config struct {
	// Store is required.
	Store Store

	// Accounts defaults to account.NewService(Store).
	Accounts *account.Service

	// Game is the tuning every websocket session plays with.
	Game config.BreakoutConfig

	// FPS is the tick rate of websocket sessions. Defaults to 60.
	FPS int

	// Logger defaults to log.Default().
	Logger *log.Logger

	// RateLimit defaults to DefaultRateLimitConfig.
	RateLimit *RateLimitConfig

	// CORSOrigins lists allowed browser origins; "*" matches any run of
	// characters. Nil allows localhost on any port.
	CORSOrigins []string

	// TokenTTL defaults to DefaultTokenTTL.
	TokenTTL time.Duration

	// TrustProxy honours X-Forwarded-For and X-Real-IP for rate limiting
	// and logs. Leave it off unless a proxy sets those headers.
	TrustProxy bool

	// DisableRequestLog turns off per-request logging.
	DisableRequestLog bool
}

// Server is the HTTP API with websocket game sessions.
type Server struct {
	cfg      Config
	logger   *log.Logger
	accounts *account.Service
	tokens   *TokenStore
	limiter  *IPRateLimiter
	upgrader websocket.Upgrader
	router   *chi.Mux

	// ctx ends every websocket session on Shutdown
	ctx      context.Context
	cancel   context.CancelFunc
	sessions sync.WaitGroup

	mu      sync.Mutex
	httpSrv *http.Server
}

// New validates cfg and builds the router. No listener is opened until
// ListenAndServe.
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("server: store is required")
	}
	if err := cfg.Game.Validate(); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.CORSOrigins == nil {
		cfg.CORSOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	rateCfg := DefaultRateLimitConfig
	if cfg.RateLimit != nil {
		rateCfg = *cfg.RateLimit
	}
	rateCfg.TrustProxy = cfg.TrustProxy
	accounts := cfg.Accounts
	if accounts == nil {
		accounts = account.NewService(cfg.Store)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:      cfg,
		logger:   cfg.Logger,
		accounts: accounts,
		tokens:   NewTokenStore(cfg.TokenTTL),
		limiter:  NewIPRateLimiter(rateCfg),
		ctx:      ctx,
		cancel:   cancel,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	s.router = s.newRouter()
	return s, nil
}

// Handler returns the HTTP handler, for httptest or a custom listener.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Tokens returns the login token store.
func (s *Server) Tokens() *TokenStore {
	return s.tokens
}

// ListenAndServe serves on addr until Shutdown. A Shutdown returns nil.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.mu.Lock()
	s.httpSrv = srv
	s.mu.Unlock()

	s.logger.Info("starting HTTP server", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown ends all game sessions and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	s.cancel()
	s.limiter.Stop()

	s.mu.Lock()
	srv := s.httpSrv
	s.mu.Unlock()

	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}

	// Hijacked websocket connections are not tracked by http.Server
	done := make(chan struct{})
	go func() {
		s.sessions.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		err = errors.Join(err, ctx.Err())
	}
	return err
}

// ShutdownTimeout returns a context bounded by the default shutdown timeout.
func ShutdownTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), shutdownTimeout)
}
