package core

import (
	"encoding/json"
	"testing"
)

func TestColorText(t *testing.T) {
	for c := ColorDefault; c <= ColorGray; c++ {
		data, err := json.Marshal(c)
		if err != nil {
			t.Fatalf("Marshal(%d) error = %v", c, err)
		}
		var back Color
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", data, err)
		}
		if back != c {
			t.Errorf("color %s decoded as %s", c, back)
		}
	}

	var c Color = ColorRed
	if err := c.UnmarshalText([]byte("ultraviolet")); err != nil || c != ColorDefault {
		t.Errorf("unknown name decoded to %s, %v", c, err)
	}
	if Color(99).String() != "default" {
		t.Errorf("out of range color = %q", Color(99).String())
	}
}
