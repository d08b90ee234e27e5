package config

import (
	"math"
	"testing"
	"time"
)

func TestCurveLinearDropSpeed(t *testing.T) {
	cfg := DefaultBinSortConfig()
	c := NewCurve(cfg.Difficulty, cfg.Spawn)

	tests := []struct {
		level    int
		expected float64
	}{
		{1, 2.0},
		{2, 2.2},
		{6, 3.0},
		{31, 8.0},  // reaches the cap exactly
		{500, 8.0}, // never exceeds it
		{0, 2.0},   // levels below one are treated as one
	}

	for _, tc := range tests {
		got := c.DropSpeed(tc.level)
		if math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("DropSpeed(%d) = %v, expected %v", tc.level, got, tc.expected)
		}
	}
}

func TestCurveLogDropSpeed(t *testing.T) {
	cfg := DefaultBinSortConfig()
	cfg.Difficulty.Curve = CurveLog
	c := NewCurve(cfg.Difficulty, cfg.Spawn)

	if c.DropSpeed(1) != cfg.Difficulty.InitialDropSpeed {
		t.Errorf("log curve should start at the initial speed, got %v", c.DropSpeed(1))
	}

	prev := c.DropSpeed(1)
	for level := 2; level <= 200; level++ {
		got := c.DropSpeed(level)
		if got < prev {
			t.Fatalf("DropSpeed(%d) = %v decreased from %v", level, got, prev)
		}
		if got > cfg.Difficulty.MaxDropSpeed {
			t.Fatalf("DropSpeed(%d) = %v exceeds max %v", level, got, cfg.Difficulty.MaxDropSpeed)
		}
		prev = got
	}
}

func TestCurveSpawnInterval(t *testing.T) {
	cfg := DefaultBinSortConfig()
	c := NewCurve(cfg.Difficulty, cfg.Spawn)

	if got := c.SpawnInterval(1); got != 2500*time.Millisecond {
		t.Errorf("SpawnInterval(1) = %v, expected 2.5s", got)
	}
	if got := c.SpawnInterval(2); got != 2425*time.Millisecond {
		t.Errorf("SpawnInterval(2) = %v, expected 2.425s", got)
	}

	prev := c.SpawnInterval(1)
	for level := 2; level <= 100; level++ {
		got := c.SpawnInterval(level)
		if got > prev {
			t.Fatalf("SpawnInterval(%d) = %v grew from %v", level, got, prev)
		}
		if got < cfg.Spawn.MinInterval {
			t.Fatalf("SpawnInterval(%d) = %v below floor %v", level, got, cfg.Spawn.MinInterval)
		}
		prev = got
	}
	if prev != cfg.Spawn.MinInterval {
		t.Errorf("SpawnInterval should converge to the floor, got %v", prev)
	}
}

func TestCurveRotatesAt(t *testing.T) {
	cfg := DefaultBinSortConfig()
	ApplyVariant(&cfg, VariantRotating)
	c := NewCurve(cfg.Difficulty, cfg.Spawn)

	for level, want := range map[int]bool{1: false, 2: false, 3: true, 4: false, 6: true, 9: true} {
		if got := c.RotatesAt(level); got != want {
			t.Errorf("RotatesAt(%d) = %v, expected %v", level, got, want)
		}
	}

	classic := NewCurve(DefaultBinSortConfig().Difficulty, DefaultBinSortConfig().Spawn)
	if classic.RotatesAt(3) {
		t.Error("classic curve should never rotate")
	}
}

func TestCurveCorrectProbability(t *testing.T) {
	cfg := DefaultBinSortConfig()
	c := NewCurve(cfg.Difficulty, cfg.Spawn)
	if got := c.CorrectProbability(5, 3); math.Abs(got-1.0/3) > 1e-9 {
		t.Errorf("without tiers probability should be uniform, got %v", got)
	}

	ApplyVariant(&cfg, VariantRotating)
	c = NewCurve(cfg.Difficulty, cfg.Spawn)
	tests := map[int]float64{1: 0.6, 3: 0.6, 4: 0.5, 7: 0.4, 50: 0.4}
	for level, want := range tests {
		if got := c.CorrectProbability(level, 3); got != want {
			t.Errorf("CorrectProbability(%d) = %v, expected %v", level, got, want)
		}
	}
}

func TestCurveDisabled(t *testing.T) {
	cfg := DefaultBinSortConfig()
	ApplyPreset(&cfg, DifficultyFixed)
	if NewCurve(cfg.Difficulty, cfg.Spawn).IsEnabled() {
		t.Error("fixed preset should disable progression")
	}
}
