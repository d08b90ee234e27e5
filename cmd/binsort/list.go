package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/binsort/internal/registry"
	"github.com/vovakirdan/binsort/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game variants",
	Long:  `Shows every registered Bin Sort variant with its rules and, when a
score database exists, how often it was played.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	stats := map[string]*storage.GameStats{}
	if store, err := storage.Open(flagDBPath); err == nil {
		if all, err := store.GetAllGamesStats(); err == nil {
			stats = all
		}
		store.Close()
	}

	width := len("Variant")
	for _, g := range games {
		width = max(width, len(variantName(g.ID)))
	}

	fmt.Printf("  %-*s  %-5s  %-5s  %s\n", width, "Variant", "Runs", "Best", "Title")
	fmt.Printf("  %-*s  %-5s  %-5s  %s\n", width, "-------", "----", "----", "-----")
	for _, g := range games {
		runs, best := 0, 0
		if st, ok := stats[g.ID]; ok {
			runs, best = st.GamesCount, st.HighScore
		}
		fmt.Printf("  %-*s  %-5d  %-5d  %s\n", width, variantName(g.ID), runs, best, g.Title)
		if g.Description != "" {
			fmt.Printf("  %-*s  %s\n", width+14, "", g.Description)
		}
	}

	fmt.Println()
	fmt.Println("Run 'binsort play <variant>' to play.")
}

// variantName turns a game ID back into the variant name used on the
// command line.
func variantName(gameID string) string {
	if name, ok := strings.CutPrefix(gameID, "binsort_"); ok {
		return name
	}
	return "classic"
}
