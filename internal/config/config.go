// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"fmt"
	"time"
)

// BinSortConfig contains all configuration for the bin sorting game.
type BinSortConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Bin        BinConfig        `yaml:"bin"`
	Items      ItemsConfig      `yaml:"items"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Rules      RulesConfig      `yaml:"rules"`
	HighScores HighScoresConfig `yaml:"high_scores"`
	Reward     RewardConfig     `yaml:"reward"`
}

// FieldConfig defines the play field in logical units.
type FieldConfig struct {
	MaxWidth      float64       `yaml:"max_width"`      // Design width cap
	FrameInterval time.Duration `yaml:"frame_interval"` // Reference frame for per-frame speeds
}

// BinConfig defines the bin geometry and controls.
type BinConfig struct {
	Width            float64 `yaml:"width"`
	TopRatio         float64 `yaml:"top_ratio"`         // Bin top edge as a fraction of field height
	CollectionRadius float64 `yaml:"collection_radius"` // Half height of the collection band
	HitZoneRatio     float64 `yaml:"hit_zone_ratio"`    // Hit zone width as a fraction of bin width
	MoveStep         float64 `yaml:"move_step"`         // Distance per key press
	BoostFactor      float64 `yaml:"boost_factor"`      // Multiplier while shift is held
	HoldSpeed        float64 `yaml:"hold_speed"`        // Units per frame while a key is held
	DragSensitivity  float64 `yaml:"drag_sensitivity"`
}

// ItemsConfig defines falling item parameters.
type ItemsConfig struct {
	Size float64 `yaml:"size"`
}

// SpawnPolicy selects how the spawner picks categories.
type SpawnPolicy string

const (
	SpawnUniform  SpawnPolicy = "uniform"
	SpawnWeighted SpawnPolicy = "weighted"
)

// SpawnConfig defines spawn cadence, batching and placement.
type SpawnConfig struct {
	Policy          SpawnPolicy   `yaml:"policy"`
	InitialInterval time.Duration `yaml:"initial_interval"`
	MinInterval     time.Duration `yaml:"min_interval"`
	MaxBatch        int           `yaml:"max_batch"`        // Items per spawn tick at most
	LevelsPerExtra  int           `yaml:"levels_per_extra"` // Levels needed for one more item per batch
	Stagger         float64       `yaml:"stagger"`          // Extra vertical offset per batch slot
	MinDistanceX    float64       `yaml:"min_distance_x"`
	MinDistanceY    float64       `yaml:"min_distance_y"`
	MaxAttempts     int           `yaml:"max_attempts"`
	Tiers           []SpawnTier   `yaml:"tiers"`
	Tutorial        []string      `yaml:"tutorial"` // "target" or "other" per scripted spawn
}

// SpawnTier sets the chance of spawning the assigned category from a level on.
type SpawnTier struct {
	FromLevel          int     `yaml:"from_level"`
	CorrectProbability float64 `yaml:"correct_probability"`
}

// CurveType selects the drop speed growth function.
type CurveType string

const (
	CurveLinear CurveType = "linear"
	CurveLog    CurveType = "log"
)

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled          bool          `yaml:"enabled"`
	Interval         time.Duration `yaml:"interval"` // Wall-clock time per level
	Curve            CurveType     `yaml:"curve"`
	InitialDropSpeed float64       `yaml:"initial_drop_speed"` // Units per frame
	MaxDropSpeed     float64       `yaml:"max_drop_speed"`
	SpeedIncrement   float64       `yaml:"speed_increment"` // Linear curve step per level
	LogScale         float64       `yaml:"log_scale"`       // Log curve factor
	SpawnDecay       float64       `yaml:"spawn_decay"`     // Spawn interval factor per level
	RotateEvery      int           `yaml:"rotate_every"`    // Reassign target every N levels, 0 = never
}

// ScoringConfig defines points and combo parameters.
type ScoringConfig struct {
	BasePoints      float64 `yaml:"base_points"`
	ComboMultiplier float64 `yaml:"combo_multiplier"`
	MaxCombo        int     `yaml:"max_combo"`
	ComboReset      int     `yaml:"combo_reset"`  // Streak value after a break (0 or 1)
	LevelFactor     float64 `yaml:"level_factor"` // Weight of ln(level), 0 disables
}

// WrongCollectRule decides what catching an off-target item does.
type WrongCollectRule string

const (
	WrongCollectGameOver WrongCollectRule = "game_over"
	WrongCollectIgnore   WrongCollectRule = "ignore"
)

// RulesConfig defines lives and failure rules.
type RulesConfig struct {
	InitialLives int              `yaml:"initial_lives"` // 0 = first miss ends the run
	WrongCollect WrongCollectRule `yaml:"wrong_collect"`
	NameLimit    int              `yaml:"name_limit"`
}

// HighScoresConfig defines the session high-score list.
type HighScoresConfig struct {
	Limit int    `yaml:"limit"`
	Key   string `yaml:"key"` // Key-value storage key for persistence
}

// RewardConfig defines the optional coupon collaborator.
type RewardConfig struct {
	Threshold int           `yaml:"threshold"`
	URL       string        `yaml:"url"`
	Timeout   time.Duration `yaml:"timeout"`
}

// Variant names a rule set registered as a separate game.
type Variant string

const (
	VariantClassic  Variant = "classic"
	VariantRotating Variant = "rotating"
	VariantSudden   Variant = "sudden"
)

// Variants returns all known variants in display order.
func Variants() []Variant {
	return []Variant{VariantClassic, VariantRotating, VariantSudden}
}

// ParseVariant converts a name into a variant. An empty name is classic.
func ParseVariant(s string) (Variant, error) {
	if s == "" {
		return VariantClassic, nil
	}
	for _, v := range Variants() {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("config: unknown variant %q", s)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
