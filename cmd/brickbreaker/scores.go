package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickbreaker/internal/session"
)

var (
	flagHistoryLimit int
	flagClearScores  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [username]",
	Short: "Show a player's games and stats",
	Long: `Display the recent games and aggregate stats of a player. Without a
username, shows the logged in player (or Guest).

Examples:
  brickbreaker scores
  brickbreaker scores alice --limit 5
  brickbreaker scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of recent games to show")
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete every recorded score")
}

func runScores(_ *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(); err != nil {
			fatalf("Error clearing scores: %v", err)
		}
		fmt.Println("All scores deleted.")
		return
	}

	player := currentPlayer(store)
	if len(args) == 1 {
		player = args[0]
	}
	if player == "" {
		player = session.GuestName
	}

	history, err := store.History(player, flagHistoryLimit)
	if err != nil {
		fatalf("Error retrieving scores: %v", err)
	}

	fmt.Printf("Scores - %s\n", player)
	fmt.Println()

	if len(history) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'brickbreaker play' to set the first score!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %s\n", "#", "Score", "Played")
	fmt.Printf("  %-4s  %-8s  %s\n", "-", "-----", "------")
	for i, entry := range history {
		fmt.Printf("  %-4d  %-8d  %s\n", i+1, entry.Score, entry.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(player)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Games: %d  Best: %d  Average: %.1f  Total: %d\n",
		stats.GamesCount, stats.BestScore, stats.AvgScore, stats.TotalScore)
}
