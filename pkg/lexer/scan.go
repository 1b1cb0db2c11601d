package lexer

import (
	"strings"

	"github.com/siyuan-infoblox/use-splitter/pkg/token"
)

func (lx *Lexer) scanIdentBytes() {
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

// scanIdentOrKeyword scans a name and checks it against the keyword table.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.scanIdentBytes()
	text := lx.cursor.TextFrom(start)
	if k, ok := token.LookupKeyword(text); ok {
		return token.New(k, text)
	}
	return token.New(token.String, text)
}

// scanNumber is greedy over digits, letters, underscores and dots, which covers
// hex, binary, octal, exponent and separator forms without validating them.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for {
		b := lx.cursor.Peek()
		if !isIdentContinueByte(b) && b != '.' {
			break
		}
		lx.cursor.Bump()
	}
	return lx.emit(token.Number, start)
}

// scanString consumes a quoted literal, honoring backslash escapes.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' {
			lx.cursor.Bump()
			continue
		}
		if b == quote {
			break
		}
	}
	return lx.emit(token.ConstantString, start)
}

// scanHeredoc consumes <<<LABEL, <<<"LABEL" and <<<'LABEL' literals up to the
// closing label line. It reports false when the input is not a heredoc opener.
func (lx *Lexer) scanHeredoc() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Skip(3)
	for b := lx.cursor.Peek(); b == ' ' || b == '\t'; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
	var quote byte
	if b := lx.cursor.Peek(); b == '\'' || b == '"' {
		quote = b
		lx.cursor.Bump()
	}
	if !isIdentStartByte(lx.cursor.Peek()) {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	labelStart := lx.cursor.Mark()
	lx.scanIdentBytes()
	label := lx.cursor.TextFrom(labelStart)
	if quote != 0 && !lx.cursor.Eat(quote) {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	if !lx.eatNewline() {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}

	for !lx.cursor.EOF() {
		for b := lx.cursor.Peek(); b == ' ' || b == '\t'; b = lx.cursor.Peek() {
			lx.cursor.Bump()
		}
		if lx.cursor.HasPrefix(label) && !isIdentContinueByte(lx.cursor.PeekAt(len(label))) {
			lx.cursor.Skip(len(label))
			break
		}
		nl := strings.IndexByte(lx.cursor.Rest(), '\n')
		if nl < 0 {
			lx.cursor.Skip(len(lx.cursor.Rest()))
			break
		}
		lx.cursor.Skip(nl + 1)
	}
	return lx.emit(token.Heredoc, start), true
}

var punctKinds = map[byte]token.Kind{
	';':  token.Semicolon,
	',':  token.Comma,
	'{':  token.LBrace,
	'}':  token.RBrace,
	'(':  token.LParen,
	')':  token.RParen,
	'[':  token.LBracket,
	']':  token.RBracket,
	'\\': token.NsSeparator,
}

// scanOperatorOrPunct handles the few multi-byte operators the analyzers care
// about; every other byte becomes its own Punct token.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	switch {
	case lx.cursor.HasPrefix("::"):
		lx.cursor.Skip(2)
		return lx.emit(token.DoubleColon, start)
	case lx.cursor.HasPrefix("->"):
		lx.cursor.Skip(2)
		return lx.emit(token.ObjectOperator, start)
	case lx.cursor.HasPrefix("?->"):
		lx.cursor.Skip(3)
		return lx.emit(token.ObjectOperator, start)
	}

	ch := lx.cursor.Bump()
	if k, ok := punctKinds[ch]; ok {
		return lx.emit(k, start)
	}
	return lx.emit(token.Punct, start)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// PHP names accept any byte >= 0x80, so multi-byte UTF-8 sequences stay inside
// one identifier without decoding.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b >= 0x80
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
