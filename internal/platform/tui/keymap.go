package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/binsort/internal/core"
)

// KeyMapper translates Bubble Tea key and mouse messages to game actions.
// This centralizes bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// boost reports a shifted move key. isQuit reports a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, boost, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, false, true
	case "left", "a":
		return core.ActionLeft, false, false
	case "right", "d":
		return core.ActionRight, false, false
	case "shift+left", "A":
		return core.ActionLeft, true, false
	case "shift+right", "D":
		return core.ActionRight, true, false
	case "enter":
		return core.ActionConfirm, false, false
	case "b", "esc":
		return core.ActionBack, false, false
	case "p", " ":
		return core.ActionPause, false, false
	case "r":
		return core.ActionRestart, false, false
	}
	return core.ActionNone, false, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, boost, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	if boost {
		frame.Set(core.ActionBoost)
	}
	return isQuit
}

// Pointer tracks a mouse drag across motion events.
type Pointer struct {
	lastX    int
	dragging bool
}

// MapMouseToFrame feeds a mouse event into the frame as a horizontal drag.
// Only movement with the left button held counts. Returns true while a
// drag is in progress.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, p *Pointer, frame *core.InputFrame) bool {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			p.lastX = msg.X
			p.dragging = true
		}
	case tea.MouseActionMotion:
		if !p.dragging {
			return false
		}
		if dx := msg.X - p.lastX; dx != 0 {
			frame.Drag(float64(dx))
		}
		p.lastX = msg.X
	case tea.MouseActionRelease:
		p.dragging = false
	}
	return p.dragging
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
