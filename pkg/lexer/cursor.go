package lexer

import "strings"

// Cursor is a byte position in the source being lexed.
type Cursor struct {
	src string
	Off int
}

// NewCursor creates a cursor at the start of src.
func NewCursor(src string) Cursor {
	return Cursor{src: src}
}

// EOF reports whether the cursor reached the end of input.
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.src)
}

// Peek returns the current byte, or 0 at end of input.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.src[c.Off]
}

// PeekAt returns the byte n positions ahead, or 0 past the end.
func (c *Cursor) PeekAt(n int) byte {
	if c.Off+n >= len(c.src) {
		return 0
	}
	return c.src[c.Off+n]
}

// HasPrefix reports whether the remaining input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	return strings.HasPrefix(c.src[c.Off:], s)
}

// HasPrefixFold is HasPrefix with ASCII case folding.
func (c *Cursor) HasPrefixFold(s string) bool {
	rest := c.src[c.Off:]
	return len(rest) >= len(s) && strings.EqualFold(rest[:len(s)], s)
}

// Bump advances one byte and returns it.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.Off]
	c.Off++
	return b
}

// Skip advances n bytes, stopping at end of input.
func (c *Cursor) Skip(n int) {
	c.Off = min(c.Off+n, len(c.src))
}

// Mark is a saved cursor position.
type Mark int

// Mark saves the current position.
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// TextFrom returns the source between the mark and the current position.
func (c *Cursor) TextFrom(m Mark) string {
	return c.src[int(m):c.Off]
}

// Reset moves the cursor back to the mark.
func (c *Cursor) Reset(m Mark) {
	c.Off = int(m)
}

// Eat consumes the next byte if it equals b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.src[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// Rest returns the unread input.
func (c *Cursor) Rest() string {
	return c.src[c.Off:]
}
