package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/platform/tui"
	"github.com/vovakirdan/brickbreaker/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the title menu",
	Long: `Start the title menu to pick a difficulty, play, and browse the
leaderboard without leaving the terminal. This is the same flow SSH
players get.

Examples:
  brickbreaker menu`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	// The difficulty is picked in the menu
	cfg, err := config.Load(flagConfig, "")
	if err != nil {
		fatalf("Error: %v", err)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	logFile, err := openLogFile(flagLogFile)
	if err != nil {
		fatalf("Error opening log file: %v", err)
	}
	defer logFile.Close()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		store = nil
	}

	opts := tui.AppOptions{
		Game: tui.Options{
			Config:  cfg,
			FPS:     flagFPS,
			Player:  func() string { return currentPlayer(store) },
			Logger:  newLogger(logFile),
			ScreenW: width,
			ScreenH: height,
		},
	}
	if store != nil {
		opts.Game.Scores = store
		opts.Leaderboard = store
	}

	runErr := tui.RunApp(opts)
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fatalf("Error: %v", runErr)
	}
}
