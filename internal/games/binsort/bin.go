package binsort

import (
	"github.com/vovakirdan/binsort/internal/config"
	"github.com/vovakirdan/binsort/internal/core"
)

// Bin is the player-controlled collector.
type Bin struct {
	X        float64  // Centre in field units
	Width    float64
	Category Category // Category the player must collect
	Velocity int      // Held direction: -1, 0 or +1
	Boost    bool     // Modifier held with the direction
}

// Bounds returns the allowed range of X in a field of width fieldW.
func (b *Bin) Bounds(fieldW float64) core.Span {
	half := b.Width / 2
	return core.Span{Min: half, Max: fieldW - half}
}

// Clamp keeps the bin inside the field.
func (b *Bin) Clamp(fieldW float64) {
	bounds := b.Bounds(fieldW)
	b.X = core.ClampF(b.X, bounds.Min, bounds.Max)
}

// Center places the bin in the middle of the field.
func (b *Bin) Center(fieldW float64) {
	b.X = fieldW / 2
	b.Clamp(fieldW)
}

// Step moves the bin by one discrete key press in direction dir.
func (b *Bin) Step(dir int, boost bool, cfg config.BinConfig, fieldW float64) {
	dist := cfg.MoveStep
	if boost {
		dist *= cfg.BoostFactor
	}
	b.X += float64(dir) * dist
	b.Clamp(fieldW)
}

// Hold starts or stops continuous movement.
func (b *Bin) Hold(dir int, boost bool) {
	b.Velocity = dir
	b.Boost = boost && dir != 0
}

// Drift applies held movement for the given number of frame intervals.
func (b *Bin) Drift(frames float64, cfg config.BinConfig, fieldW float64) {
	if b.Velocity == 0 {
		return
	}
	speed := cfg.HoldSpeed
	if b.Boost {
		speed *= cfg.BoostFactor
	}
	b.X += float64(b.Velocity) * speed * frames
	b.Clamp(fieldW)
}

// Drag moves the bin by a pointer delta.
func (b *Bin) Drag(dx float64, cfg config.BinConfig, fieldW float64) {
	b.X += dx * cfg.DragSensitivity
	b.Clamp(fieldW)
}
