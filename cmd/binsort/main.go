// binsort is a waste-sorting arcade game for the terminal, SSH and the web.
//
// Usage:
//
//	binsort list              - List game variants
//	binsort play [variant]    - Play a variant in this terminal
//	binsort menu              - Pick variants from an interactive menu
//	binsort serve             - Start the SSH server for remote play
//	binsort web               - Start the HTTP server for browser clients
//	binsort scores [variant]  - Show high scores for a variant
//	binsort config            - Print the default configuration
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--db <path>            - Set database path (default: ~/.binsort/scores.db)
//	--config <path>        - Load a custom game config YAML
//	--difficulty <preset>  - Apply a difficulty preset
//	--reward-url <url>     - Enable coupons from a reward service
package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/binsort/internal/config"
	"github.com/vovakirdan/binsort/internal/core"
	"github.com/vovakirdan/binsort/internal/games/binsort"
	"github.com/vovakirdan/binsort/internal/reward"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagRewardURL  string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "binsort"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "binsort",
	Short: "Bin Sort - catch the right waste in your terminal",
	Long: `Bin Sort is an arcade game about sorting waste. Items fall from the
top of the field; move the bin under the ones that match its category and
let everything else fall past.

Available commands:
  list     - Show all game variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  web      - Start HTTP server for browser clients
  scores   - View high scores
  config   - Print the default configuration

Examples:
  binsort list
  binsort play
  binsort play rotating --difficulty hard
  binsort serve --ssh :2222
  binsort web --addr :8080
  binsort scores sudden`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		binsort.SetConfigPath(flagConfig)
		binsort.SetDifficultyPreset(flagDifficulty)
	},
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.binsort/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagRewardURL, "reward-url", "", "Reward service endpoint (empty disables coupons)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// rewardClient builds the reward collaborator, or nil when disabled.
// The URL flag overrides the config file.
func rewardClient() reward.Client {
	cfg, err := config.LoadBinSort(flagConfig)
	if err != nil {
		logger.Warn("could not load config, using defaults", "error", err)
		cfg = config.DefaultBinSortConfig()
	}

	url := flagRewardURL
	if url == "" {
		url = cfg.Reward.URL
	}
	if url == "" {
		return nil
	}
	timeout := cfg.Reward.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return reward.NewHTTPClient(url, cfg.Reward.Threshold, timeout)
}

// variantID resolves an optional variant argument to a game ID.
func variantID(args []string) (string, error) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	v, err := config.ParseVariant(name)
	if err != nil {
		return "", err
	}
	return binsort.GameID(v), nil
}
