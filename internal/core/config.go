package core

// Logical field units covered by one terminal cell. An 80-column terminal
// maps onto an 800-unit wide field.
const (
	CellWidth  = 10.0
	CellHeight = 20.0
)

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	// ViewportW and ViewportH override the logical viewport size in field
	// units. Zero means derive it from the screen size.
	ViewportW float64
	ViewportH float64
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Viewport returns the logical viewport size in field units.
// One row is reserved for the HUD when deriving from the screen.
func (c RuntimeConfig) Viewport() (w, h float64) {
	w, h = c.ViewportW, c.ViewportH
	if w <= 0 {
		w = float64(c.ScreenW) * CellWidth
	}
	if h <= 0 {
		h = float64(Max(c.ScreenH-1, 1)) * CellHeight
	}
	return w, h
}

// GameState summarizes the game for the platform after each tick.
type GameState struct {
	Score    int  // Current score
	Lives    int  // Remaining lives
	Level    int  // Difficulty level
	Idle     bool // Waiting for a player name
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
