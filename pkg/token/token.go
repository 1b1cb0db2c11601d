// Package token defines the lexical tokens the fixers operate on.
// Invariants:
//   - Token.Text is the exact source slice; joining all texts reproduces the file.
//   - A cleared token has Kind Empty and no text.
package token

// Token is a single lexical unit.
type Token struct {
	Kind Kind
	Text string
}

// New returns a token of the given kind.
func New(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text}
}

// IsEmpty reports whether the token carries no text.
func (t Token) IsEmpty() bool {
	return t.Text == ""
}

// IsWhitespace reports whether the token is a whitespace run.
func (t Token) IsWhitespace() bool {
	return t.Kind == Whitespace
}

// IsComment reports whether the token is a line, block or doc comment.
func (t Token) IsComment() bool {
	return t.Kind == Comment || t.Kind == DocComment
}

// IsMeaningful reports whether the token matters to the grammar: not
// whitespace, not a comment and not a cleared slot.
func (t Token) IsMeaningful() bool {
	return !t.IsWhitespace() && !t.IsComment() && !t.IsEmpty()
}

// IsClassy reports whether the token opens a class-like declaration.
func (t Token) IsClassy() bool {
	return t.Kind == Class || t.Kind == Interface || t.Kind == Trait || t.Kind == Enum
}

// IsGivenKind reports whether the token kind is one of kinds.
func (t Token) IsGivenKind(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}
