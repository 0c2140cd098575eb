// brickbreaker is a terminal brick breaker with local accounts and a
// leaderboard, playable locally, over SSH or from a browser.
//
// Usage:
//
//	brickbreaker play              - Play in this terminal
//	brickbreaker menu              - Title menu with difficulty and leaderboard
//	brickbreaker leaderboard       - Show the best score of every player
//	brickbreaker scores [user]     - Show a player's history and stats
//	brickbreaker register          - Create an account
//	brickbreaker login / logout    - Choose who local games are saved for
//	brickbreaker whoami            - Show the logged in player
//	brickbreaker serve             - Start the SSH and HTTP servers
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--db <path>           - Set database path (default: ~/.brickbreaker/brickbreaker.db)
//	--config <path>       - Game tuning file (.yaml or .toml)
//	--difficulty <name>   - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brickbreaker",
	Short: "Brickbreaker - break bricks in your terminal",
	Long: `Brickbreaker is a ball-and-paddle game for the terminal.

Clear the 9x5 wall of bricks to reach the next level; the ball gets faster
every level. You have three lives.

Available commands:
  play         - Play in this terminal
  menu         - Title menu with difficulty and leaderboard
  leaderboard  - Best score of every player
  scores       - A player's games and stats
  register     - Create an account
  login        - Save local games for an account
  logout       - Play as Guest
  whoami       - Show the logged in player
  serve        - Start the SSH and HTTP servers

Examples:
  brickbreaker play
  brickbreaker play --difficulty hard
  brickbreaker register --username alice
  brickbreaker serve --ssh :2222 --http :8080`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.brickbreaker/brickbreaker.db", "Path to the database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a game config file (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "brickbreaker",
	})

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadGameConfig resolves the game tuning from --config and --difficulty.
func loadGameConfig() (config.BreakoutConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.BreakoutConfig{}, err
	}
	return config.Load(flagConfig, preset)
}

// mustOpenStore opens the database or exits.
func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("Error opening database: %v", err)
	}
	return store
}

// currentPlayer returns the logged in username, or "" for a guest.
func currentPlayer(store *storage.Store) string {
	if store == nil {
		return ""
	}
	name, err := store.CurrentUser()
	if err != nil {
		return ""
	}
	return name
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
