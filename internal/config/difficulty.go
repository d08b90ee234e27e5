package config

import (
	"math"
	"time"
)

// Curve calculates level-dependent game parameters. Level 1 always yields
// the initial values; every parameter converges to its configured bound.
type Curve struct {
	diff  DifficultyConfig
	spawn SpawnConfig
}

// NewCurve creates a difficulty curve from the difficulty and spawn sections.
func NewCurve(diff DifficultyConfig, spawn SpawnConfig) *Curve {
	return &Curve{diff: diff, spawn: spawn}
}

// IsEnabled returns whether difficulty progression is active.
func (c *Curve) IsEnabled() bool {
	return c.diff.Enabled && c.diff.Interval > 0
}

// Interval returns the time between level increases.
func (c *Curve) Interval() time.Duration {
	return c.diff.Interval
}

// DropSpeed returns the fall speed for a level, capped at MaxDropSpeed.
func (c *Curve) DropSpeed(level int) float64 {
	if level < 1 {
		level = 1
	}
	var growth float64
	switch c.diff.Curve {
	case CurveLog:
		growth = math.Log(float64(level)) * c.diff.LogScale
	default:
		growth = float64(level-1) * c.diff.SpeedIncrement
	}
	return math.Min(c.diff.InitialDropSpeed+growth, c.diff.MaxDropSpeed)
}

// SpawnInterval returns the delay between spawns for a level, decaying
// geometrically and never below MinInterval.
func (c *Curve) SpawnInterval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	decayed := float64(c.spawn.InitialInterval) * math.Pow(c.diff.SpawnDecay, float64(level-1))
	interval := time.Duration(decayed)
	if interval < c.spawn.MinInterval {
		return c.spawn.MinInterval
	}
	return interval
}

// RotatesAt reports whether the target category is reassigned on reaching level.
func (c *Curve) RotatesAt(level int) bool {
	return c.diff.RotateEvery > 0 && level > 1 && level%c.diff.RotateEvery == 0
}

// CorrectProbability returns the weighted-spawn chance of the assigned
// category at a level: the last tier whose FromLevel is reached wins.
// Without tiers the choice is uniform over all categories.
func (c *Curve) CorrectProbability(level int, categories int) float64 {
	p := 1.0 / float64(categories)
	for _, tier := range c.spawn.Tiers {
		if level >= tier.FromLevel {
			p = tier.CorrectProbability
		}
	}
	return clampF(p, 0.0, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
