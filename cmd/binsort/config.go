package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/binsort/internal/config"
)

var flagEffective bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the embedded default configuration as YAML. Save it to
~/.binsort/configs/binsort.yaml or pass it with --config to customize play.

With --effective, prints the configuration after loading --config and
applying --difficulty instead.

Examples:
  binsort config > ~/.binsort/configs/binsort.yaml
  binsort config --effective --difficulty hard`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagEffective, "effective", false, "Print the loaded configuration with presets applied")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if !flagEffective {
		_, err := os.Stdout.Write(config.GetDefaultYAML("binsort"))
		return err
	}

	cfg, err := config.LoadBinSort(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	config.ApplyPreset(&cfg, config.ParsePreset(flagDifficulty))

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
