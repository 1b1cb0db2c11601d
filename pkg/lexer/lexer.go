// Package lexer turns PHP source into a flat token sequence.
//
// The lexer is lossless: concatenating the Text of every produced token gives
// back the input byte for byte. It never fails; unterminated strings, comments
// and heredocs extend to the end of input.
package lexer

import (
	"strings"

	"github.com/siyuan-infoblox/use-splitter/pkg/token"
)

// Lexer produces tokens from a single source.
type Lexer struct {
	cursor Cursor
	inHTML bool
}

// New creates a lexer positioned before the first byte of src. Input starts in
// inline HTML mode, as PHP files do.
func New(src string) *Lexer {
	return &Lexer{
		cursor: NewCursor(src),
		inHTML: true,
	}
}

// Lex tokenizes code in one call.
func Lex(code string) []token.Token {
	lx := New(code)
	var toks []token.Token
	for {
		tok, ok := lx.Next()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

// Next returns the next token, or false at end of input.
func (lx *Lexer) Next() (token.Token, bool) {
	if lx.cursor.EOF() {
		return token.Token{}, false
	}
	if lx.inHTML {
		return lx.scanInlineHTML(), true
	}

	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()

	switch {
	case lx.cursor.HasPrefix("?>"):
		lx.cursor.Skip(2)
		lx.eatNewline()
		lx.inHTML = true
		return lx.emit(token.CloseTag, start), true

	case isSpace(ch):
		for isSpace(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return lx.emit(token.Whitespace, start), true

	case ch == '#' && lx.cursor.PeekAt(1) != '[', lx.cursor.HasPrefix("//"):
		return lx.scanLineComment(), true

	case lx.cursor.HasPrefix("/*"):
		return lx.scanBlockComment(), true

	case ch == '$' && isIdentStartByte(lx.cursor.PeekAt(1)):
		lx.cursor.Bump()
		lx.scanIdentBytes()
		return lx.emit(token.Variable, start), true

	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword(), true

	case isDec(ch):
		return lx.scanNumber(), true

	case ch == '\'' || ch == '"' || ch == '`':
		return lx.scanString(ch), true

	case lx.cursor.HasPrefix("<<<"):
		if tok, ok := lx.scanHeredoc(); ok {
			return tok, true
		}
	}

	return lx.scanOperatorOrPunct(), true
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	return token.New(kind, lx.cursor.TextFrom(start))
}

// scanInlineHTML consumes text up to the next open tag, or the open tag itself
// when the cursor already stands on one.
func (lx *Lexer) scanInlineHTML() token.Token {
	start := lx.cursor.Mark()
	if kind, n, ok := lx.openTagAt(); ok {
		lx.cursor.Skip(n)
		if kind == token.OpenTag && !lx.eatNewline() {
			if b := lx.cursor.Peek(); b == ' ' || b == '\t' {
				lx.cursor.Bump()
			}
		}
		lx.inHTML = false
		return lx.emit(kind, start)
	}
	for !lx.cursor.EOF() {
		if _, _, ok := lx.openTagAt(); ok {
			break
		}
		lx.cursor.Bump()
	}
	return lx.emit(token.InlineHTML, start)
}

// openTagAt reports whether an open tag starts at the cursor.
func (lx *Lexer) openTagAt() (kind token.Kind, n int, ok bool) {
	if lx.cursor.Peek() != '<' {
		return 0, 0, false
	}
	if lx.cursor.HasPrefix("<?=") {
		return token.OpenTagWithEcho, 3, true
	}
	if lx.cursor.HasPrefixFold("<?php") {
		next := lx.cursor.PeekAt(5)
		if next == 0 || isSpace(next) {
			return token.OpenTag, 5, true
		}
	}
	return 0, 0, false
}

// eatNewline consumes a single "\n" or "\r\n".
func (lx *Lexer) eatNewline() bool {
	if lx.cursor.HasPrefix("\r\n") {
		lx.cursor.Skip(2)
		return true
	}
	return lx.cursor.Eat('\n')
}

func (lx *Lexer) scanLineComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || b == '\r' || lx.cursor.HasPrefix("?>") {
			break
		}
		lx.cursor.Bump()
	}
	return lx.emit(token.Comment, start)
}

func (lx *Lexer) scanBlockComment() token.Token {
	start := lx.cursor.Mark()
	kind := token.Comment
	if lx.cursor.HasPrefix("/**") && isSpace(lx.cursor.PeekAt(3)) {
		kind = token.DocComment
	}
	lx.cursor.Skip(2)
	end := strings.Index(lx.cursor.Rest(), "*/")
	if end < 0 {
		lx.cursor.Skip(len(lx.cursor.Rest()))
	} else {
		lx.cursor.Skip(end + 2)
	}
	return lx.emit(kind, start)
}
