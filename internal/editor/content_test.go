package editor

import (
	"slices"
	"testing"
)

func typeString(c *Content, s string) {
	for _, r := range s {
		c.InsertRune(r)
	}
}

func TestContentInsertAndValue(t *testing.T) {
	c := NewContent()
	typeString(c, "hello")

	if got := string(c.Value()); got != "hello" {
		t.Errorf("Value() = %q, want %q", got, "hello")
	}
	if got := c.Cursor(); got != 5 {
		t.Errorf("Cursor() = %d, want 5", got)
	}
}

func TestContentInsertMidLine(t *testing.T) {
	c := NewContent()
	typeString(c, "held")
	c.MoveLeft()
	c.InsertRune('l')

	if got := string(c.Value()); got != "helld" {
		t.Errorf("Value() = %q, want %q", got, "helld")
	}
	if got := c.Cursor(); got != 4 {
		t.Errorf("Cursor() = %d, want 4", got)
	}
}

func TestContentBackspace(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*Content)
		wantText   string
		wantCursor int
	}{
		{
			name:       "removes previous rune",
			setup:      func(c *Content) { typeString(c, "abc"); c.Backspace() },
			wantText:   "ab",
			wantCursor: 2,
		},
		{
			name:       "no-op at start",
			setup:      func(c *Content) { typeString(c, "abc"); c.Home(); c.Backspace() },
			wantText:   "abc",
			wantCursor: 0,
		},
		{
			name: "joins lines",
			setup: func(c *Content) {
				typeString(c, "ab\ncd")
				c.MoveUp()
				c.End()
				c.MoveRight()
				c.Backspace()
			},
			wantText:   "abcd",
			wantCursor: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContent()
			tt.setup(c)
			if got := string(c.Value()); got != tt.wantText {
				t.Errorf("Value() = %q, want %q", got, tt.wantText)
			}
			if got := c.Cursor(); got != tt.wantCursor {
				t.Errorf("Cursor() = %d, want %d", got, tt.wantCursor)
			}
		})
	}
}

func TestContentDeleteForward(t *testing.T) {
	c := NewContent()
	typeString(c, "abc")
	c.Home()
	c.DeleteForward()

	if got := string(c.Value()); got != "bc" {
		t.Errorf("Value() = %q, want %q", got, "bc")
	}
	if got := c.Cursor(); got != 0 {
		t.Errorf("Cursor() = %d, want 0", got)
	}

	c.End()
	c.DeleteForward()
	if got := string(c.Value()); got != "bc" {
		t.Errorf("DeleteForward at end mutated text: %q", got)
	}
}

func TestContentVerticalMovement(t *testing.T) {
	c := NewContent()
	typeString(c, "long line\nhi\nanother")

	// Cursor sits at the end of "another" (column 7). Moving up lands on
	// "hi", clamped to its length.
	c.MoveUp()
	line, col := locate(c.Value(), c.Cursor())
	if line != 1 || col != 2 {
		t.Errorf("after MoveUp at (line,col) = (%d,%d), want (1,2)", line, col)
	}

	// Moving up again reaches the long line at the remembered-less column 2.
	c.MoveUp()
	line, col = locate(c.Value(), c.Cursor())
	if line != 0 || col != 2 {
		t.Errorf("after second MoveUp at (%d,%d), want (0,2)", line, col)
	}

	c.MoveDown()
	line, _ = locate(c.Value(), c.Cursor())
	if line != 1 {
		t.Errorf("after MoveDown on line %d, want 1", line)
	}

	// MoveDown on the last line stays put.
	c.MoveDown()
	c.MoveDown()
	line, _ = locate(c.Value(), c.Cursor())
	if line != 2 {
		t.Errorf("MoveDown past last line landed on %d, want 2", line)
	}
}

func TestContentHomeEnd(t *testing.T) {
	c := NewContent()
	typeString(c, "first\nsecond line")
	c.MoveUp()

	c.Home()
	if got := c.Cursor(); got != 0 {
		t.Errorf("Home on first line = %d, want 0", got)
	}
	c.End()
	if got := c.Cursor(); got != 5 {
		t.Errorf("End on first line = %d, want 5", got)
	}
}

func TestContentSetValueClampsCursor(t *testing.T) {
	c := NewContent()
	typeString(c, "a longer document")

	c.SetValue([]rune("tiny"))
	if got := string(c.Value()); got != "tiny" {
		t.Errorf("Value() = %q, want %q", got, "tiny")
	}
	if got := c.Cursor(); got != 4 {
		t.Errorf("Cursor() = %d, want clamped 4", got)
	}
}

func TestContentValueIsACopy(t *testing.T) {
	c := NewContent()
	typeString(c, "abc")

	v := c.Value()
	v[0] = 'z'
	if got := string(c.Value()); got != "abc" {
		t.Errorf("mutating the returned slice changed content: %q", got)
	}

	seed := []rune("xyz")
	c.SetValue(seed)
	seed[0] = 'q'
	if got := string(c.Value()); got != "xyz" {
		t.Errorf("mutating the input slice changed content: %q", got)
	}
}

func TestLocateAndOffsetRoundTrip(t *testing.T) {
	text := []rune("ab\ncde\n\nf")
	for offset := 0; offset <= len(text); offset++ {
		line, col := locate(text, offset)
		if got := offsetAt(text, line, col); got != offset {
			t.Errorf("offsetAt(locate(%d)) = %d", offset, got)
		}
	}
	if !slices.Equal(text, []rune("ab\ncde\n\nf")) {
		t.Error("locate or offsetAt mutated the text")
	}
}
