package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(40, 12)

	if s.Width() != 40 || s.Height() != 12 {
		t.Fatalf("dimensions = %dx%d, expected 40x12", s.Width(), s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("new screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 4)
	s.SetColored(2, 1, 'R', ColorRed)

	c := s.GetCell(2, 1)
	if c.Rune != 'R' || c.Color != ColorRed {
		t.Errorf("GetCell(2, 1) = %+v, expected R/ColorRed", c)
	}

	// Out of bounds writes are ignored, reads return blank
	s.SetColored(-1, 0, 'X', ColorBlue)
	s.SetColored(10, 0, 'X', ColorBlue)
	if s.Get(-1, 0) != ' ' || s.Get(10, 0) != ' ' {
		t.Error("out of bounds reads should return space")
	}
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(6, 2)
	s.DrawTextColored(3, 0, "blue", ColorBlue)

	if got := s.Row(0); got != "   blu" {
		t.Errorf("Row(0) = %q, expected %q", got, "   blu")
	}
	if s.GetCell(4, 0).Color != ColorBlue {
		t.Error("drawn text should carry its color")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "red", ColorDefault)

	if got := s.Row(0); got != "    red    " {
		t.Errorf("Row(0) = %q, expected centered text", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(8, 5)
	s.DrawBox(NewRect(0, 0, 8, 5), ColorGray)

	expected := []string{
		"┌──────┐",
		"│      │",
		"│      │",
		"│      │",
		"└──────┘",
	}
	for y, want := range expected {
		if got := s.Row(y); got != want {
			t.Errorf("Row(%d) = %q, expected %q", y, got, want)
		}
	}
	if s.GetCell(0, 0).Color != ColorGray {
		t.Error("box should use the given color")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "def")

	if got := s.String(); got != "abc\ndef" {
		t.Errorf("String() = %q, expected %q", got, "abc\ndef")
	}
}

func TestScreenResizeKeepsContent(t *testing.T) {
	s := NewScreen(10, 6)
	s.DrawText(0, 0, "Turn")

	s.Resize(5, 2)
	if s.Width() != 5 || s.Height() != 2 {
		t.Fatalf("after resize, dimensions should be 5x2, got %dx%d", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Turn") {
		t.Errorf("content should survive shrinking, row 0 = %q", s.Row(0))
	}

	s.Resize(12, 4)
	if !strings.HasPrefix(s.Row(0), "Turn") {
		t.Errorf("content should survive enlarging, row 0 = %q", s.Row(0))
	}
	if s.Row(-1) != strings.Repeat(" ", 12) {
		t.Error("out of bounds row should be spaces")
	}
}
