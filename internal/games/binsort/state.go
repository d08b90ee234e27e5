package binsort

import (
	"errors"
	"time"
)

// ErrEmptyName is returned by Start when the player name is blank.
var ErrEmptyName = errors.New("binsort: please enter your name to start")

// Phase is the top-level state of a run.
type Phase int

const (
	PhaseIdle     Phase = iota // Waiting for a player name
	PhasePlaying               // Run in progress
	PhaseGameOver              // Run ended, reason and high scores shown
)

// String returns the phase name used in the render feed.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Item is a falling piece of waste. X and Y are the item centre in field
// units; Y grows downward and starts above the field.
type Item struct {
	ID             string
	Kind           Kind
	X, Y           float64
	Collected      bool
	PendingRemoval bool
}

// Category returns the waste category of the item.
func (it *Item) Category() Category {
	return it.Kind.Category
}

// Outcome classifies an item against the bin for one update.
type Outcome int

const (
	OutcomeNone      Outcome = iota // Keeps falling
	OutcomeCollected                // Assigned category caught in the hit zone
	OutcomeWrong                    // Other category caught in the hit zone
	OutcomeMissed                   // Assigned category fell past the band
	OutcomeDiscarded                // Other category fell past the band, no penalty
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeCollected:
		return "collected"
	case OutcomeWrong:
		return "wrong"
	case OutcomeMissed:
		return "missed"
	case OutcomeDiscarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// Resolution records the outcome assigned to one item.
type Resolution struct {
	ItemID  string
	Outcome Outcome
	Points  int // Awarded for OutcomeCollected
}

// State is the single container of everything a run mutates.
type State struct {
	Phase  Phase
	Paused bool
	Player string

	Score     int
	Lives     int
	Combo     int // Uncapped streak of consecutive catches
	BestCombo int
	Level     int

	DropSpeed     float64       // Units per frame interval
	SpawnInterval time.Duration // Delay before the next spawn batch

	Items     []Item
	Bin       Bin
	Processed map[string]struct{}
	Spawned   int

	FieldW, FieldH float64
	Elapsed        time.Duration
	Reason         string

	ScoreFlash time.Duration // Remaining highlight after a catch
	LifeFlash  time.Duration // Remaining highlight after a lost life
}

// isProcessed reports whether the item already has a terminal outcome.
func (s *State) isProcessed(id string) bool {
	_, ok := s.Processed[id]
	return ok
}

// markProcessed records that an item has its terminal outcome.
func (s *State) markProcessed(id string) {
	if s.Processed == nil {
		s.Processed = make(map[string]struct{})
	}
	s.Processed[id] = struct{}{}
}

// EventKind identifies a host input event.
type EventKind int

const (
	EventMoveLeft  EventKind = iota // Discrete step left
	EventMoveRight                  // Discrete step right
	EventHoldLeft                   // Start moving left every frame
	EventHoldRight                  // Start moving right every frame
	EventRelease                    // Stop held movement
	EventDrag                       // Pointer delta in field units
	EventPause                      // Toggle pause
)

// Event is one input event pushed by the host.
type Event struct {
	Kind  EventKind
	Boost bool    // Modifier held
	DX    float64 // Drag delta for EventDrag
}

// Report summarizes what one Advance call changed.
type Report struct {
	Resolutions []Resolution
	Spawned     int
	LevelUps    int
	Rotated     bool
	GameOver    bool
	SaveErr     error // High-score persistence failure, non-fatal
}
