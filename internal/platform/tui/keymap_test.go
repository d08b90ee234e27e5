package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/binsort/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name       string
		msg        tea.KeyMsg
		wantAction core.Action
		wantBoost  bool
		wantQuit   bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false, false},
		{"a", runeKey('a'), core.ActionLeft, false, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false, false},
		{"d", runeKey('d'), core.ActionRight, false, false},
		{"shift left", tea.KeyMsg{Type: tea.KeyShiftLeft}, core.ActionLeft, true, false},
		{"shift right", tea.KeyMsg{Type: tea.KeyShiftRight}, core.ActionRight, true, false},
		{"capital D", runeKey('D'), core.ActionRight, true, false},
		{"pause", runeKey('p'), core.ActionPause, false, false},
		{"space pauses", tea.KeyMsg{Type: tea.KeySpace}, core.ActionPause, false, false},
		{"restart", runeKey('r'), core.ActionRestart, false, false},
		{"back", runeKey('b'), core.ActionBack, false, false},
		{"escape", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionBack, false, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false, false},
		{"q quits", runeKey('q'), core.ActionQuit, false, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, false, true},
		{"unbound", runeKey('z'), core.ActionNone, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, boost, quit := km.MapKey(tt.msg)
			if action != tt.wantAction {
				t.Errorf("action = %v, expected %v", action, tt.wantAction)
			}
			if boost != tt.wantBoost {
				t.Errorf("boost = %v, expected %v", boost, tt.wantBoost)
			}
			if quit != tt.wantQuit {
				t.Errorf("quit = %v, expected %v", quit, tt.wantQuit)
			}
		})
	}
}

func TestMapKeyToFrameSetsBoost(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyShiftLeft}, &frame) {
		t.Fatal("shift+left should not quit")
	}
	if !frame.Has(core.ActionLeft) || !frame.Has(core.ActionBoost) {
		t.Errorf("frame actions = %v, expected Left and Boost", frame)
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()
	var p Pointer

	// Motion without a press is hover and ignored
	km.MapMouseToFrame(tea.MouseMsg{X: 5, Action: tea.MouseActionMotion}, &p, &frame)
	if frame.PointerDX != 0 {
		t.Fatalf("hover moved pointer by %v", frame.PointerDX)
	}

	km.MapMouseToFrame(tea.MouseMsg{X: 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}, &p, &frame)
	km.MapMouseToFrame(tea.MouseMsg{X: 13, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion}, &p, &frame)
	km.MapMouseToFrame(tea.MouseMsg{X: 12, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion}, &p, &frame)
	if frame.PointerDX != 2 {
		t.Errorf("PointerDX = %v, expected 2", frame.PointerDX)
	}

	if km.MapMouseToFrame(tea.MouseMsg{X: 12, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}, &p, &frame) {
		t.Error("release should end the drag")
	}
	km.MapMouseToFrame(tea.MouseMsg{X: 20, Action: tea.MouseActionMotion}, &p, &frame)
	if frame.PointerDX != 2 {
		t.Errorf("motion after release changed PointerDX to %v", frame.PointerDX)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEscape}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}
