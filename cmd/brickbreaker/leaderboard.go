package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickbreaker/internal/platform/tui"
)

var (
	flagPlain            bool
	flagLeaderboardLimit int
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the best score of every player",
	Long: `Show each player's best score, highest first, with the date it was
first reached.

Examples:
  brickbreaker leaderboard
  brickbreaker leaderboard --plain --limit 5`,
	Args: cobra.NoArgs,
	Run:  runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain text table instead of the interactive view")
	leaderboardCmd.Flags().IntVar(&flagLeaderboardLimit, "limit", 10, "Rows to print with --plain")
}

func runLeaderboard(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	player := currentPlayer(store)

	if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if err := tui.RunLeaderboard(store, player, width, height); err != nil {
			fatalf("Error running leaderboard: %v", err)
		}
		return
	}

	entries, err := store.Leaderboard(flagLeaderboardLimit)
	if err != nil {
		fatalf("Error retrieving leaderboard: %v", err)
	}

	fmt.Println("Leaderboard")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores yet. Play the game to appear on the leaderboard!")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-8s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-16s  %-8s  %s\n", "----", "------", "-----", "----")
	for _, e := range entries {
		marker := ""
		if e.Username == player {
			marker = "  <- you"
		}
		fmt.Printf("  %-4d  %-16s  %-8d  %s%s\n", e.Rank, e.Username, e.Score, e.DisplayDate(), marker)
	}
}
