package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("dimensions = %dx%d, expected 80x24", s.Width(), s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorGreen)
	cell := s.GetCell(5, 5)
	if cell.Rune != 'X' || cell.Color != ColorGreen {
		t.Errorf("GetCell(5, 5) = %+v, expected green X", cell)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenDrawTextClipsAndCounts(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColored(18, 0, "Hello", ColorRed)

	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
	if s.GetCell(18, 0).Color != ColorRed {
		t.Error("DrawTextColored should color every rune")
	}

	// Multi-byte runes advance one cell each
	s.DrawText(0, 1, "♥♥x")
	if s.Get(2, 1) != 'x' {
		t.Errorf("expected 'x' at column 2, got %q", s.Get(2, 1))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorGray)

	corners := map[[2]int]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner at %v = %q, expected %q", pos, got, want)
		}
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("box edges not drawn")
	}
	if s.GetCell(5, 4).Color != ColorGray || s.Get(3, 2) != ' ' {
		t.Error("box should be gray and hollow")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawTextColored(0, 1, "BBBBB", ColorRed)
	s.DrawHLine(1, 2, 3, 'C', ColorBlue)

	if got := s.String(); got != "AAAAA\nBBBBB\n CCC " {
		t.Errorf("String() = %q", got)
	}
	if got := strings.Count(s.String(), "\n"); got != 2 {
		t.Errorf("String() has %d line breaks, expected 2", got)
	}
}

func TestScreenDrawRectClips(t *testing.T) {
	s := NewScreen(4, 4)
	s.DrawRect(NewRect(2, 2, 5, 5), '#')

	if s.Get(3, 3) != '#' || s.Get(1, 1) != ' ' {
		t.Errorf("DrawRect filled the wrong cells:\n%s", s)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.Resize(8, 4)

	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if s.Get(0, 0) != ' ' {
		t.Error("Resize should clear the buffer")
	}
}
