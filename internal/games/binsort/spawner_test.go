package binsort

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/binsort/internal/config"
)

func newTestSpawner(mutate func(*config.SpawnConfig)) *Spawner {
	cfg := config.DefaultBinSortConfig()
	if mutate != nil {
		mutate(&cfg.Spawn)
	}
	cfg = config.Validate(cfg)
	return NewSpawner(cfg.Spawn, config.NewCurve(cfg.Difficulty, cfg.Spawn), cfg.Items.Size)
}

func TestSpawnerBatchSize(t *testing.T) {
	sp := newTestSpawner(func(c *config.SpawnConfig) { c.MaxBatch = 3 })

	tests := []struct {
		level    int
		expected int
	}{
		{1, 1},
		{3, 1},
		{4, 2},
		{6, 2},
		{7, 3},
		{40, 3},
	}
	for _, tc := range tests {
		if got := sp.BatchSize(tc.level); got != tc.expected {
			t.Errorf("BatchSize(%d) = %d, expected %d", tc.level, got, tc.expected)
		}
	}

	single := newTestSpawner(nil)
	if single.BatchSize(40) != 1 {
		t.Error("max batch of 1 should disable batching")
	}
}

func TestSpawnerPlacement(t *testing.T) {
	sp := newTestSpawner(func(c *config.SpawnConfig) { c.MaxBatch = 3 })
	rng := rand.New(rand.NewSource(1))
	ids := make(map[string]bool)

	for range 200 {
		batch := sp.Spawn(rng, 7, Wet, 800)
		if len(batch) != 3 {
			t.Fatalf("expected a full batch of 3, got %d", len(batch))
		}
		for slot, it := range batch {
			lo := 40 + float64(slot)*720/3
			if it.X < lo || it.X > lo+720/3 {
				t.Errorf("slot %d x = %v outside its section [%v, %v]", slot, it.X, lo, lo+240)
			}
			if want := -40 - float64(slot)*60; it.Y != want {
				t.Errorf("slot %d y = %v, expected %v", slot, it.Y, want)
			}
			if ids[it.ID] {
				t.Fatalf("duplicate item id %s", it.ID)
			}
			ids[it.ID] = true
		}
	}
}

func TestSpawnerSkipsCrowdedSlots(t *testing.T) {
	sp := newTestSpawner(func(c *config.SpawnConfig) {
		c.MaxBatch = 3
		c.Stagger = 0
	})
	rng := rand.New(rand.NewSource(2))

	// The usable width collapses to one point, so every later slot collides.
	batch := sp.Spawn(rng, 7, Dry, 80)
	if len(batch) != 1 {
		t.Errorf("crowded slots should be skipped, got %d items", len(batch))
	}
}

func TestSpawnerTutorialScript(t *testing.T) {
	sp := newTestSpawner(func(c *config.SpawnConfig) {
		c.Tutorial = []string{"target", "other", "other", "target"}
		c.MaxBatch = 3
	})
	rng := rand.New(rand.NewSource(3))

	want := []bool{true, false, false, true}
	for i, isTarget := range want {
		batch := sp.Spawn(rng, 10, Hazardous, 800)
		if len(batch) != 1 {
			t.Fatalf("tutorial spawn %d: expected one item, got %d", i, len(batch))
		}
		if (batch[0].Category() == Hazardous) != isTarget {
			t.Errorf("tutorial spawn %d: category %v", i, batch[0].Category())
		}
	}
	if sp.InTutorial() {
		t.Error("script should be exhausted")
	}
	if len(sp.Spawn(rng, 10, Hazardous, 800)) != 3 {
		t.Error("random spawning should resume full batches after the script")
	}

	sp.Reset()
	if !sp.InTutorial() {
		t.Error("Reset should rewind the script")
	}
}

func TestSpawnerWeightedPolicy(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		allTarget   bool
		noneTarget  bool
	}{
		{"always target", 1, true, false},
		{"never target", 0, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sp := newTestSpawner(func(c *config.SpawnConfig) {
				c.Policy = config.SpawnWeighted
				c.Tiers = []config.SpawnTier{{FromLevel: 1, CorrectProbability: tc.probability}}
			})
			rng := rand.New(rand.NewSource(4))
			for range 100 {
				it := sp.Spawn(rng, 1, Dry, 800)[0]
				if tc.allTarget && it.Category() != Dry {
					t.Fatalf("expected only target items, got %v", it.Category())
				}
				if tc.noneTarget && it.Category() == Dry {
					t.Fatal("expected no target items")
				}
			}
		})
	}
}

func TestSpawnerUniformCoversCatalog(t *testing.T) {
	sp := newTestSpawner(nil)
	rng := rand.New(rand.NewSource(5))
	seen := make(map[string]bool)
	for range 500 {
		seen[sp.Spawn(rng, 1, Wet, 800)[0].Kind.Name] = true
	}
	if len(seen) != len(Catalog()) {
		t.Errorf("uniform spawning produced %d of %d kinds", len(seen), len(Catalog()))
	}
}

func TestSpawnerDeterministicIDs(t *testing.T) {
	a := newTestSpawner(nil).Spawn(rand.New(rand.NewSource(9)), 1, Wet, 800)
	b := newTestSpawner(nil).Spawn(rand.New(rand.NewSource(9)), 1, Wet, 800)
	if a[0].ID != b[0].ID || a[0].X != b[0].X {
		t.Error("same seed should produce the same item")
	}
}
