package core

import "testing"

func TestInputFrameSetHasClear(t *testing.T) {
	f := NewInputFrame()

	if f.Has(ActionLeft) || !f.Empty() {
		t.Error("New frame should have no actions")
	}

	f.Set(ActionLeft)
	f.Set(ActionBoost)
	f.Set(ActionNone)
	f.Drag(2.5)
	f.Drag(-1)

	if !f.Has(ActionLeft) || !f.Has(ActionBoost) {
		t.Error("Set actions should be reported by Has")
	}
	if f.Has(ActionNone) || f.Has(ActionRight) {
		t.Error("unset actions should not be reported")
	}
	if f.PointerDX != 1.5 {
		t.Errorf("PointerDX = %v, expected 1.5", f.PointerDX)
	}
	if got := f.String(); got != "[Left Boost]" {
		t.Errorf("String() = %q, expected [Left Boost]", got)
	}

	copied := f
	f.Clear()

	if f.Has(ActionLeft) || !f.Empty() {
		t.Error("Clear should reset actions and pointer movement")
	}
	if !copied.Has(ActionLeft) || copied.PointerDX != 1.5 {
		t.Error("a copied frame should be independent of the original")
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionPause) {
		t.Error("Zero frame should not report actions")
	}
	f.Set(ActionPause)
	if !f.Has(ActionPause) {
		t.Error("Set on a zero frame should work")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:  "None",
		ActionLeft:  "Left",
		ActionPause: "Pause",
		Action(200): "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", a, got, want)
		}
	}
}
