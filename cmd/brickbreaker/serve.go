package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickbreaker/internal/account"
	"github.com/vovakirdan/brickbreaker/internal/platform/tui"
	"github.com/vovakirdan/brickbreaker/internal/server"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
	flagCORSOrigins []string
	flagTrustProxy  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH and HTTP servers",
	Long: `Start an SSH server for terminal play and an HTTP server for browsers.

SSH users log in with their account password and play as that account;
unregistered names or an empty password play as Guest. Browser clients
log in through /api/login and play over /ws. Both share the leaderboard in --db.

An empty address disables that server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.brickbreaker/host_key

Examples:
  brickbreaker serve                        # SSH on :23234, HTTP on :8080
  brickbreaker serve --ssh :2222 --http ""  # SSH only, on port 2222
  brickbreaker serve --cors https://play.example.com

Users can connect with:
  ssh alice@localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringSliceVar(&flagCORSOrigins, "cors", nil, "Allowed browser origins (default: localhost)")
	serveCmd.Flags().BoolVar(&flagTrustProxy, "trust-proxy", false, "Use X-Forwarded-For / X-Real-IP as the client address")
}

// listener is one of the servers run by serve.
type listener interface {
	Shutdown(ctx context.Context) error
}

func runServe(_ *cobra.Command, _ []string) {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		fatalf("Error: both --ssh and --http are disabled")
	}

	logger := newLogger(os.Stderr)

	game, err := loadGameConfig()
	if err != nil {
		fatalf("Error: %v", err)
	}

	store := mustOpenStore()
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 2)
	var running []listener

	if flagSSHAddr != "" {
		cfg := tui.DefaultSSHServerConfig()
		cfg.Address = flagSSHAddr
		cfg.HostKeyPath = flagHostKey
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		cfg.FPS = flagFPS
		cfg.Game = game

		sshSrv, sshErr := tui.NewSSHServer(cfg, store, account.NewService(store), logger.WithPrefix("ssh"))
		if sshErr != nil {
			fatalf("Error creating SSH server: %v", sshErr)
		}
		running = append(running, sshSrv)
		go func() { errc <- sshSrv.ListenAndServe() }()
		fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(flagSSHAddr))
	}

	if flagHTTPAddr != "" {
		httpSrv, httpErr := server.New(server.Config{
			Store:       store,
			Game:        game,
			FPS:         flagFPS,
			Logger:      logger.WithPrefix("http"),
			CORSOrigins: flagCORSOrigins,
			TrustProxy:  flagTrustProxy,
		})
		if httpErr != nil {
			fatalf("Error creating HTTP server: %v", httpErr)
		}
		running = append(running, httpSrv)
		go func() { errc <- httpSrv.ListenAndServe(flagHTTPAddr) }()
	}

	fmt.Println("Press Ctrl+C to stop")

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errc:
	}

	shutdownCtx, cancel := server.ShutdownTimeout()
	defer cancel()
	for _, l := range running {
		if err := l.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown failed", "err", err)
		}
	}

	if serveErr != nil {
		fatalf("Server error: %v", serveErr)
	}
}

// portOf returns the port of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
