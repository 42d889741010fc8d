package editor

import (
	"slices"
	"sync"
)

// Content is the text model behind the widget: the full document as a rune
// slice plus a cursor offset. All methods are safe for concurrent use; the
// session reads and replaces the content from its own goroutines while the
// widget edits it on the event loop.
type Content struct {
	mu     sync.Mutex
	text   []rune
	cursor int
}

// NewContent returns an empty content model.
func NewContent() *Content {
	return &Content{}
}

// Value returns a copy of the document text.
func (c *Content) Value() []rune {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.text)
}

// SetValue replaces the document text atomically, clamping the cursor to the
// new length.
func (c *Content) SetValue(content []rune) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.text = slices.Clone(content)
	if c.cursor > len(c.text) {
		c.cursor = len(c.text)
	}
}

// Cursor returns the cursor offset in runes.
func (c *Content) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Snapshot returns the text and cursor together, for rendering.
func (c *Content) Snapshot() ([]rune, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.text), c.cursor
}

// InsertRune inserts r at the cursor and advances past it.
func (c *Content) InsertRune(r rune) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.text = slices.Insert(c.text, c.cursor, r)
	c.cursor++
}

// Backspace removes the rune before the cursor, if any.
func (c *Content) Backspace() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cursor == 0 {
		return
	}
	c.text = slices.Delete(c.text, c.cursor-1, c.cursor)
	c.cursor--
}

// DeleteForward removes the rune at the cursor, if any.
func (c *Content) DeleteForward() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cursor >= len(c.text) {
		return
	}
	c.text = slices.Delete(c.text, c.cursor, c.cursor+1)
}

// MoveLeft moves the cursor one rune left.
func (c *Content) MoveLeft() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cursor > 0 {
		c.cursor--
	}
}

// MoveRight moves the cursor one rune right.
func (c *Content) MoveRight() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cursor < len(c.text) {
		c.cursor++
	}
}

// MoveUp moves the cursor to the previous line, keeping the column where the
// line is long enough.
func (c *Content) MoveUp() {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, col := locate(c.text, c.cursor)
	if line == 0 {
		return
	}
	c.cursor = offsetAt(c.text, line-1, col)
}

// MoveDown moves the cursor to the next line, keeping the column where the
// line is long enough.
func (c *Content) MoveDown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, col := locate(c.text, c.cursor)
	if line >= lineCount(c.text)-1 {
		return
	}
	c.cursor = offsetAt(c.text, line+1, col)
}

// Home moves the cursor to the start of its line.
func (c *Content) Home() {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, _ := locate(c.text, c.cursor)
	c.cursor = offsetAt(c.text, line, 0)
}

// End moves the cursor to the end of its line.
func (c *Content) End() {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, _ := locate(c.text, c.cursor)
	start := offsetAt(c.text, line, 0)
	end := start
	for end < len(c.text) && c.text[end] != '\n' {
		end++
	}
	c.cursor = end
}

// locate returns the line and column of a rune offset.
func locate(text []rune, offset int) (line, col int) {
	for i := 0; i < offset && i < len(text); i++ {
		if text[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col
}

// offsetAt returns the rune offset of the given line and column, clamping
// the column to the line length.
func offsetAt(text []rune, line, col int) int {
	offset := 0
	for line > 0 && offset < len(text) {
		if text[offset] == '\n' {
			line--
		}
		offset++
	}
	for col > 0 && offset < len(text) && text[offset] != '\n' {
		offset++
		col--
	}
	return offset
}

// lineCount returns the number of lines in the text. Empty text is one line.
func lineCount(text []rune) int {
	n := 1
	for _, r := range text {
		if r == '\n' {
			n++
		}
	}
	return n
}
