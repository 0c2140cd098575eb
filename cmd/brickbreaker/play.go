package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickbreaker/internal/platform/tui"
	"github.com/vovakirdan/brickbreaker/internal/session"
	"github.com/vovakirdan/brickbreaker/internal/storage"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Left/A, Right/D  - Move the paddle
  P/Space          - Pause
  ?                - Show the rules
  Ctrl+S           - Save a PNG screenshot
  Q/Ctrl+C         - Quit

Scores are saved for the logged in player, or as Guest.

Examples:
  brickbreaker play
  brickbreaker play --difficulty easy
  brickbreaker play --config ./my-breakout.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, menuCmd} {
		cmd.Flags().StringVar(&flagLogFile, "log-file", "~/.brickbreaker/brickbreaker.log", "Where game logs are written")
	}
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadGameConfig()
	if err != nil {
		fatalf("Error: %v", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// The game owns the terminal, so logs go to a file
	logFile, err := openLogFile(flagLogFile)
	if err != nil {
		fatalf("Error opening log file: %v", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	opts := tui.Options{
		Config:  cfg,
		FPS:     flagFPS,
		Player:  func() string { return currentPlayer(store) },
		Logger:  logger,
		ScreenW: width,
		ScreenH: height,
	}
	if store != nil {
		opts.Scores = store
	}

	runErr := tui.Run(opts)

	if store != nil {
		player := currentPlayer(store)
		if player == "" {
			player = session.GuestName
		}
		if best, bestErr := store.BestScore(player); bestErr == nil && best > 0 {
			fmt.Printf("Best score for %s: %d\n", player, best)
		}
		store.Close()
	}

	if runErr != nil {
		fatalf("Error running game: %v", runErr)
	}
}

// openLogFile opens path for appending, expanding a leading ~.
func openLogFile(path string) (*os.File, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
