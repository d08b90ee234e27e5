package core

import "strings"

// Action is a semantic input, decoupled from the physical key that
// produced it.
type Action uint8

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A
	ActionRight          // Right arrow, D
	ActionBoost          // Shift held with a move key
	ActionConfirm        // Enter
	ActionBack           // B, Escape
	ActionRestart        // R after game over
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P, Space
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionBoost:   "Boost",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "Unknown"
}

// InputFrame is the input collected for one simulation tick. The zero
// value is an empty frame and frames copy by value.
type InputFrame struct {
	actions uint16

	// PointerDX is the horizontal drag distance in screen cells accumulated
	// since the previous frame (mouse drag or touch swipe).
	PointerDX float64
}

// NewInputFrame returns an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a != ActionNone {
		f.actions |= 1 << a
	}
}

// Has reports whether an action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a != ActionNone && f.actions&(1<<a) != 0
}

// Drag accumulates pointer movement.
func (f *InputFrame) Drag(dx float64) {
	f.PointerDX += dx
}

// Empty reports a frame with no actions and no pointer movement.
func (f InputFrame) Empty() bool {
	return f.actions == 0 && f.PointerDX == 0
}

// Actions lists the triggered actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionLeft; int(a) < len(actionNames); a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	*f = InputFrame{}
}

// String lists the triggered actions, for logs and test failures.
func (f InputFrame) String() string {
	names := make([]string, 0, 4)
	for _, a := range f.Actions() {
		names = append(names, a.String())
	}
	return "[" + strings.Join(names, " ") + "]"
}
