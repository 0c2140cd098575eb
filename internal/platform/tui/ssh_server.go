package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/brickbreaker/internal/account"
	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/session"
	"github.com/vovakirdan/brickbreaker/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.brickbreaker/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// FPS is the simulation rate of every session.
	FPS int

	// Game is the tuning every session plays with.
	Game config.BreakoutConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		FPS:         60,
		Game:        config.DefaultBreakoutConfig(),
	}
}

// ScoreStore saves finished games and ranks players.
type ScoreStore interface {
	session.ScoreSubmitter
	LeaderboardSource
}

// Authenticator checks account passwords. *account.Service implements it.
type Authenticator interface {
	Login(username, password string) (*storage.User, error)
}

type contextKey struct{ name string }

// playerContextKey holds the account a connection authenticated as.
var playerContextKey = &contextKey{"player"}

// SSHServer serves the menu flow per SSH session. Connections that log in
// with an account password play as that account; everyone else is Guest.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  ScoreStore
	auth   Authenticator
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. store may be nil to run without
// saving scores or a leaderboard. auth may be nil, in which case no
// password is asked and every session plays as Guest.
func NewSSHServer(cfg SSHServerConfig, store ScoreStore, auth Authenticator, logger *log.Logger) (*SSHServer, error) {
	if err := cfg.Game.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		auth:   auth,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".brickbreaker", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}
	if auth != nil {
		opts = append(opts, wish.WithPasswordAuth(srv.passwordHandler))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a session model for each SSH connection.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	player := sessionPlayer(sshSession.Context())
	opts := AppOptions{Game: s.sessionOptions(player, pty.Window.Width, pty.Window.Height)}
	if s.store != nil {
		opts.Leaderboard = s.store
	}

	return NewAppModel(opts), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// passwordHandler authenticates a connection and remembers who it plays as.
func (s *SSHServer) passwordHandler(ctx ssh.Context, password string) bool {
	player, ok := s.authenticate(ctx.User(), password)
	if !ok {
		s.logger.Warn("ssh login rejected", "user", ctx.User(), "remote", ctx.RemoteAddr().String())
		return false
	}
	ctx.SetValue(playerContextKey, player)
	return true
}

// authenticate decides who a connection plays as. A registered user with
// the right password plays as that user and a wrong password is refused.
// Unknown users and empty passwords play as Guest, so nobody can record
// scores for someone else's account.
func (s *SSHServer) authenticate(user, password string) (string, bool) {
	u, err := s.auth.Login(user, password)
	switch {
	case err == nil:
		return u.Username, true
	case errors.Is(err, account.ErrUserNotFound), errors.Is(err, account.ErrMissingCredential):
		return session.GuestName, true
	case errors.Is(err, account.ErrIncorrectPassword):
		return "", false
	default:
		s.logger.Error("ssh login failed", "user", user, "err", err)
		return "", false
	}
}

// sessionPlayer returns the player stored by passwordHandler, or Guest.
func sessionPlayer(ctx context.Context) string {
	if name, ok := ctx.Value(playerContextKey).(string); ok && name != "" {
		return name
	}
	return session.GuestName
}

// sessionOptions builds the game options for one remote player.
func (s *SSHServer) sessionOptions(user string, width, height int) Options {
	opts := Options{
		Config:        s.config.Game,
		FPS:           s.config.FPS,
		Player:        session.StaticPlayer(user),
		Logger:        s.logger.With("user", user),
		NoScreenshots: true,
		ScreenW:       width,
		ScreenH:       height,
	}
	if s.store != nil {
		opts.Scores = s.store
	}
	return opts
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"player", sessionPlayer(sshSession.Context()),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe blocks until the server stops. A Shutdown returns nil.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("ssh server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down SSH server")
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
