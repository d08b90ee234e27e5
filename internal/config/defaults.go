package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/binsort.yaml
var defaultBinSortYAML []byte

// DefaultBinSortConfig returns the built-in configuration. It mirrors
// defaults/binsort.yaml and is used when the embedded YAML cannot be parsed.
func DefaultBinSortConfig() BinSortConfig {
	return BinSortConfig{
		Field: FieldConfig{
			MaxWidth:      800,
			FrameInterval: 16 * time.Millisecond,
		},
		Bin: BinConfig{
			Width:            64,
			TopRatio:         0.85,
			CollectionRadius: 30,
			HitZoneRatio:     0.8,
			MoveStep:         70,
			BoostFactor:      1.5,
			HoldSpeed:        8,
			DragSensitivity:  1.0,
		},
		Items: ItemsConfig{
			Size: 40,
		},
		Spawn: SpawnConfig{
			Policy:          SpawnUniform,
			InitialInterval: 2500 * time.Millisecond,
			MinInterval:     1500 * time.Millisecond,
			MaxBatch:        1,
			LevelsPerExtra:  3,
			Stagger:         60,
			MinDistanceX:    48,
			MinDistanceY:    48,
			MaxAttempts:     10,
		},
		Difficulty: DifficultyConfig{
			Enabled:          true,
			Interval:         15 * time.Second,
			Curve:            CurveLinear,
			InitialDropSpeed: 2,
			MaxDropSpeed:     8,
			SpeedIncrement:   0.2,
			LogScale:         1.5,
			SpawnDecay:       0.97,
		},
		Scoring: ScoringConfig{
			BasePoints:      1,
			ComboMultiplier: 0.5,
			MaxCombo:        5,
			ComboReset:      0,
		},
		Rules: RulesConfig{
			InitialLives: 3,
			WrongCollect: WrongCollectGameOver,
			NameLimit:    10,
		},
		HighScores: HighScoresConfig{
			Limit: 5,
			Key:   "binsort.highscores",
		},
		Reward: RewardConfig{
			Threshold: 25,
			Timeout:   5 * time.Second,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "binsort":
		return defaultBinSortYAML
	default:
		return nil
	}
}
