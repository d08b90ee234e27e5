package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestSpanContains(t *testing.T) {
	s := SpanAround(100, 30)

	tests := []struct {
		name     string
		v        float64
		contains bool
		beyond   bool
	}{
		{"center", 100, true, false},
		{"top edge inclusive", 70, true, false},
		{"bottom edge inclusive", 130, true, false},
		{"above", 69.9, false, false},
		{"just past bottom", 130.01, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.Contains(tc.v); got != tc.contains {
				t.Errorf("Contains(%v) = %v, expected %v", tc.v, got, tc.contains)
			}
			if got := s.Beyond(tc.v); got != tc.beyond {
				t.Errorf("Beyond(%v) = %v, expected %v", tc.v, got, tc.beyond)
			}
		})
	}

	if s.Width() != 60 {
		t.Errorf("Width() = %v, expected 60", s.Width())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
		{3, 32, 8, 20}, // inverted envelope collapses to midpoint
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestAbs(t *testing.T) {
	if Abs(5) != 5 {
		t.Error("Abs(5) should be 5")
	}
	if Abs(-5) != 5 {
		t.Error("Abs(-5) should be 5")
	}
}
