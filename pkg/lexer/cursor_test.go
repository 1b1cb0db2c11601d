package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursor(t *testing.T) {
	req := require.New(t)
	c := NewCursor("ab<?PHP")

	req.False(c.EOF())
	req.Equal(byte('a'), c.Peek())
	req.Equal(byte('b'), c.PeekAt(1))
	req.Equal(byte(0), c.PeekAt(100))

	m := c.Mark()
	req.Equal(byte('a'), c.Bump())
	req.True(c.Eat('b'))
	req.False(c.Eat('x'))
	req.Equal("ab", c.TextFrom(m))

	req.True(c.HasPrefix("<?"))
	req.False(c.HasPrefix("<?php"))
	req.True(c.HasPrefixFold("<?php"))

	c.Skip(100)
	req.True(c.EOF())
	req.Equal(byte(0), c.Bump())
	req.Equal("", c.Rest())

	c.Reset(m)
	req.Equal("ab<?PHP", c.Rest())
}
