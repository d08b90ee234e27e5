package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadBinSort loads the game configuration.
// Search order: customPath -> ~/.binsort/configs/binsort.yaml -> ./configs/binsort.yaml -> embedded default
// Files only need to set the keys they change; everything else keeps its default.
func LoadBinSort(customPath string) (BinSortConfig, error) {
	cfg := embeddedBinSort()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return Validate(cfg), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("binsort.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			overlay := cfg
			if err := yaml.Unmarshal(data, &overlay); err == nil {
				return Validate(overlay), nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/binsort.yaml"); err == nil {
		overlay := cfg
		if err := yaml.Unmarshal(data, &overlay); err == nil {
			return Validate(overlay), nil
		}
	}

	return Validate(cfg), nil
}

// embeddedBinSort parses the embedded defaults, falling back to the
// hardcoded copy if the embed is broken.
func embeddedBinSort() BinSortConfig {
	var cfg BinSortConfig
	if err := yaml.Unmarshal(defaultBinSortYAML, &cfg); err != nil {
		return DefaultBinSortConfig()
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".binsort", "configs", filename)
}

// ApplyVariant modifies the config for a rule variant.
func ApplyVariant(cfg *BinSortConfig, v Variant) {
	switch v {
	case VariantRotating:
		cfg.Spawn.Policy = SpawnWeighted
		cfg.Spawn.MaxBatch = 3
		cfg.Spawn.Tiers = []SpawnTier{
			{FromLevel: 1, CorrectProbability: 0.6},
			{FromLevel: 4, CorrectProbability: 0.5},
			{FromLevel: 7, CorrectProbability: 0.4},
		}
		cfg.Spawn.Tutorial = []string{"target", "target", "other", "target"}
		cfg.Difficulty.Curve = CurveLog
		cfg.Difficulty.RotateEvery = 3
		cfg.Scoring.LevelFactor = 1
		cfg.Scoring.ComboReset = 1
		cfg.HighScores.Limit = 10
	case VariantSudden:
		cfg.Rules.InitialLives = 0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *BinSortConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Bin.Width = 80
		cfg.Difficulty.InitialDropSpeed = 1.5
		cfg.Difficulty.Interval = 20 * time.Second
		if cfg.Rules.InitialLives > 0 {
			cfg.Rules.InitialLives = 5
		}
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Bin.Width = 56
		cfg.Difficulty.InitialDropSpeed = 3
		cfg.Difficulty.Interval = 10 * time.Second
		if cfg.Rules.InitialLives > 2 {
			cfg.Rules.InitialLives = 2
		}
	case DifficultyNormal:
		cfg.Difficulty.Enabled = true
	}
}

// Validate normalizes a config so every envelope is well formed: maxima are
// never below their minima, counts are at least one, and growth and scoring
// factors are never negative.
func Validate(cfg BinSortConfig) BinSortConfig {
	def := DefaultBinSortConfig()

	if cfg.Field.MaxWidth <= 0 {
		cfg.Field.MaxWidth = def.Field.MaxWidth
	}
	if cfg.Field.FrameInterval <= 0 {
		cfg.Field.FrameInterval = def.Field.FrameInterval
	}
	if cfg.Bin.Width <= 0 {
		cfg.Bin.Width = def.Bin.Width
	}
	if cfg.Bin.TopRatio <= 0 || cfg.Bin.TopRatio > 1 {
		cfg.Bin.TopRatio = def.Bin.TopRatio
	}
	if cfg.Bin.HitZoneRatio <= 0 {
		cfg.Bin.HitZoneRatio = def.Bin.HitZoneRatio
	}
	if cfg.Bin.BoostFactor < 1 {
		cfg.Bin.BoostFactor = 1
	}
	if cfg.Items.Size <= 0 {
		cfg.Items.Size = def.Items.Size
	}

	if cfg.Spawn.Policy != SpawnWeighted {
		cfg.Spawn.Policy = SpawnUniform
	}
	if cfg.Spawn.InitialInterval <= 0 {
		cfg.Spawn.InitialInterval = def.Spawn.InitialInterval
	}
	if cfg.Spawn.MinInterval <= 0 || cfg.Spawn.MinInterval > cfg.Spawn.InitialInterval {
		cfg.Spawn.MinInterval = cfg.Spawn.InitialInterval
	}
	if cfg.Spawn.MaxBatch < 1 {
		cfg.Spawn.MaxBatch = 1
	}
	if cfg.Spawn.LevelsPerExtra < 1 {
		cfg.Spawn.LevelsPerExtra = 1
	}
	if cfg.Spawn.MaxAttempts < 1 {
		cfg.Spawn.MaxAttempts = def.Spawn.MaxAttempts
	}
	sort.SliceStable(cfg.Spawn.Tiers, func(i, j int) bool {
		return cfg.Spawn.Tiers[i].FromLevel < cfg.Spawn.Tiers[j].FromLevel
	})

	if cfg.Difficulty.Curve != CurveLog {
		cfg.Difficulty.Curve = CurveLinear
	}
	if cfg.Difficulty.InitialDropSpeed <= 0 {
		cfg.Difficulty.InitialDropSpeed = def.Difficulty.InitialDropSpeed
	}
	if cfg.Difficulty.MaxDropSpeed < cfg.Difficulty.InitialDropSpeed {
		cfg.Difficulty.MaxDropSpeed = cfg.Difficulty.InitialDropSpeed
	}
	cfg.Difficulty.SpeedIncrement = max(cfg.Difficulty.SpeedIncrement, 0)
	cfg.Difficulty.LogScale = max(cfg.Difficulty.LogScale, 0)
	if cfg.Difficulty.SpawnDecay <= 0 || cfg.Difficulty.SpawnDecay > 1 {
		cfg.Difficulty.SpawnDecay = 1
	}
	if cfg.Difficulty.RotateEvery < 0 {
		cfg.Difficulty.RotateEvery = 0
	}

	if cfg.Scoring.MaxCombo < 0 {
		cfg.Scoring.MaxCombo = 0
	}
	cfg.Scoring.BasePoints = max(cfg.Scoring.BasePoints, 0)
	cfg.Scoring.ComboMultiplier = max(cfg.Scoring.ComboMultiplier, 0)
	cfg.Scoring.LevelFactor = max(cfg.Scoring.LevelFactor, 0)
	if cfg.Scoring.ComboReset != 1 {
		cfg.Scoring.ComboReset = 0
	}

	if cfg.Rules.InitialLives < 0 {
		cfg.Rules.InitialLives = 0
	}
	if cfg.Rules.WrongCollect != WrongCollectIgnore {
		cfg.Rules.WrongCollect = WrongCollectGameOver
	}
	if cfg.Rules.NameLimit <= 0 {
		cfg.Rules.NameLimit = def.Rules.NameLimit
	}

	if cfg.HighScores.Limit <= 0 {
		cfg.HighScores.Limit = def.HighScores.Limit
	}
	if cfg.HighScores.Key == "" {
		cfg.HighScores.Key = def.HighScores.Key
	}
	if cfg.Reward.Timeout <= 0 {
		cfg.Reward.Timeout = def.Reward.Timeout
	}

	return cfg
}
