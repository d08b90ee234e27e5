package binsort

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/vovakirdan/binsort/internal/config"
)

// Tutorial script entries.
const (
	scriptTarget = "target"
	scriptOther  = "other"
)

// Spawner creates batches of falling items.
type Spawner struct {
	cfg      config.SpawnConfig
	curve    *config.Curve
	itemSize float64
	scripted int // Tutorial entries already used
}

// NewSpawner creates a spawner for the given spawn settings.
func NewSpawner(cfg config.SpawnConfig, curve *config.Curve, itemSize float64) *Spawner {
	return &Spawner{cfg: cfg, curve: curve, itemSize: itemSize}
}

// Reset rewinds the tutorial script.
func (sp *Spawner) Reset() {
	sp.scripted = 0
}

// InTutorial reports whether scripted spawns remain.
func (sp *Spawner) InTutorial() bool {
	return sp.scripted < len(sp.cfg.Tutorial)
}

// BatchSize returns how many items one spawn tick creates at a level.
func (sp *Spawner) BatchSize(level int) int {
	if sp.InTutorial() {
		return 1
	}
	n := 1 + (level-1)/sp.cfg.LevelsPerExtra
	return max(1, min(n, sp.cfg.MaxBatch))
}

// Spawn creates one batch. Slots whose position search runs out of
// attempts are skipped, so the batch may be smaller than BatchSize.
func (sp *Spawner) Spawn(rng *rand.Rand, level int, target Category, fieldW float64) []Item {
	n := sp.BatchSize(level)
	batch := make([]Item, 0, n)

	lo, hi := sp.itemSize, fieldW-sp.itemSize
	if hi < lo {
		lo, hi = fieldW/2, fieldW/2
	}
	section := (hi - lo) / float64(n)

	for slot := range n {
		category := sp.pickCategory(rng, level, target)
		kind := randomKind(rng, category)
		y := -sp.itemSize - float64(slot)*sp.cfg.Stagger
		left := lo + section*float64(slot)

		placed := false
		for attempt := 0; attempt < sp.cfg.MaxAttempts && !placed; attempt++ {
			x := left + rng.Float64()*section
			if sp.crowded(batch, x, y) {
				continue
			}
			batch = append(batch, Item{ID: newItemID(rng), Kind: kind, X: x, Y: y})
			placed = true
		}
	}
	return batch
}

// pickCategory applies the tutorial script, then the configured policy.
func (sp *Spawner) pickCategory(rng *rand.Rand, level int, target Category) Category {
	if sp.InTutorial() {
		entry := sp.cfg.Tutorial[sp.scripted]
		sp.scripted++
		if entry == scriptOther {
			return otherCategory(rng, target)
		}
		return target
	}

	switch sp.cfg.Policy {
	case config.SpawnWeighted:
		if rng.Float64() < sp.curve.CorrectProbability(level, categoryCount) {
			return target
		}
		return otherCategory(rng, target)
	default:
		return randomCategory(rng)
	}
}

// crowded reports whether (x, y) is too close on both axes to an item
// already placed in the batch.
func (sp *Spawner) crowded(batch []Item, x, y float64) bool {
	for i := range batch {
		if math.Abs(batch[i].X-x) < sp.cfg.MinDistanceX && math.Abs(batch[i].Y-y) < sp.cfg.MinDistanceY {
			return true
		}
	}
	return false
}

// newItemID draws a UUID from the game RNG so seeded runs replay exactly.
func newItemID(rng *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return fmt.Sprintf("item-%016x", rng.Uint64())
	}
	return id.String()
}
