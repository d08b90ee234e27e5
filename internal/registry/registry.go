// Package registry is the catalogue of playable game variants. Variants
// register a factory from init() so hosts can list and build them by ID.
package registry

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/binsort/internal/core"
)

// Game is the host-facing contract of a variant. Games hold pure logic;
// the host handles name entry, input mapping, timing and rendering.
type Game interface {
	// ID is the unique identifier used by the CLI and the score log
	// (e.g., "binsort", "binsort_rotating").
	ID() string

	// Title is the display name (e.g., "Bin Sort").
	Title() string

	// Reset returns the game to name entry with the given screen and seed.
	Reset(cfg core.RuntimeConfig)

	// Start begins a run for the named player. A blank name is rejected
	// with an error and leaves the game unchanged.
	Start(player string) error

	// Resize adapts the game to new screen dimensions in any phase.
	Resize(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the game into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State summarizes score, lives and phase for the host.
	State() core.GameState
}

// Describer is implemented by games with a one-line rules summary.
type Describer interface {
	Description() string
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory builds a fresh game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
	order   []string
)

// Register adds a variant. Variants are listed in registration order.
// Panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}
	entries[id] = entry{info: info, factory: f}
	order = append(order, id)
}

// List returns every registered variant in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, len(order))
	for i, id := range order {
		result[i] = entries[id].info
	}
	return result
}

// Info returns the metadata of a variant.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create builds a new instance of a variant.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether a variant is registered.
func Exists(id string) bool {
	_, ok := Info(id)
	return ok
}
