package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/binsort/internal/registry"
	"github.com/vovakirdan/binsort/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores for a variant",
	Long: `Display the top scores for the given variant (classic when omitted).

A limit of 0 shows every logged run. --clear deletes the run log and the
saved high-score list of the variant.

Examples:
  binsort scores
  binsort scores rotating --limit 20
  binsort scores sudden --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of scores to show (0 for all)")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the logged runs and high scores of the variant")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID, err := variantID(args)
	if err != nil {
		return fmt.Errorf("%w (run 'binsort list' to see variants)", err)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		return clearScores(store, game)
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'binsort play %s' to set the first high score!\n", variantName(gameID))
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-5s  %-3s  %s\n", "Rank", "Player", "Score", "Combo", "Lv", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-5s  %-3s  %s\n", "----", "------", "-----", "-----", "--", "----")
	for i, e := range scores {
		player := e.PlayerName
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-10s  %-6d  x%-4d  %-3d  %s\n",
			i+1, player, e.Score, e.BestCombo, e.Level, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.1f  Best combo: x%d\n",
			stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestCombo)
	}
	return nil
}

// clearScores empties the run log and the saved high-score list.
func clearScores(store *storage.Store, game registry.Game) error {
	n, err := store.ClearScores(game.ID())
	if err != nil {
		return err
	}
	if b, ok := game.(interface{ BoardKey() string }); ok {
		game.Reset(runtimeConfig())
		if err := store.Delete(b.BoardKey()); err != nil {
			return err
		}
	}
	logger.Info("scores cleared", "game", game.ID(), "runs", n)
	return nil
}
