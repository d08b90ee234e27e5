package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/binsort/internal/platform/tui"
	"github.com/vovakirdan/binsort/internal/registry"
	"github.com/vovakirdan/binsort/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (classic when omitted).

Controls:
  Left/Right, A/D   - Move the bin
  Shift+Left/Right  - Move faster
  Mouse drag        - Drag the bin
  P/Space           - Pause
  R                 - Restart (after game over)
  B/Esc             - Back (when paused or after game over)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Wider bin, slower items, extra life
  normal - Config as written
  hard   - Narrower bin, faster items, fewer lives
  fixed  - No progression, stays at the initial level

Examples:
  binsort play
  binsort play rotating
  binsort play sudden --difficulty easy
  binsort play --config ./my-binsort.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
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
		// Continue without storage - game still works
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	var opts []tui.Option
	if rc := rewardClient(); rc != nil {
		opts = append(opts, tui.WithRewards(rc))
	}

	if err := tui.Run(game, store, runtimeConfig(), opts...); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
