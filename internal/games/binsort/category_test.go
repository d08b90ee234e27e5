package binsort

import (
	"math/rand"
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected Category
		wantErr  bool
	}{
		{"wet", Wet, false},
		{" Dry ", Dry, false},
		{"HAZARDOUS", Hazardous, false},
		{"compost", Wet, true},
	}
	for _, tc := range tests {
		got, err := ParseCategory(tc.input)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseCategory(%q) error = %v", tc.input, err)
			continue
		}
		if !tc.wantErr && got != tc.expected {
			t.Errorf("ParseCategory(%q) = %v, expected %v", tc.input, got, tc.expected)
		}
	}
}

func TestOtherCategoryNeverRepeats(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	for _, c := range Categories() {
		seen := make(map[Category]bool)
		for range 100 {
			o := otherCategory(rng, c)
			if o == c {
				t.Fatalf("otherCategory(%v) returned the same category", c)
			}
			seen[o] = true
		}
		if len(seen) != categoryCount-1 {
			t.Errorf("otherCategory(%v) covered %d categories", c, len(seen))
		}
	}
}

func TestCatalogCoversCategories(t *testing.T) {
	for _, c := range Categories() {
		if n := len(KindsOf(c)); n != 3 {
			t.Errorf("%v has %d kinds, expected 3", c, n)
		}
	}
}
