// Package fixer holds the rewrite rules and the token-stream contract they rely on.
package fixer

import "github.com/siyuan-infoblox/use-splitter/pkg/token"

// Tokens is the mutable token stream a fixer rewrites in place.
// Index arguments address slots; InsertAt shifts every later index, so fixers
// that insert must walk their targets from the highest index down.
type Tokens interface {
	Len() int
	At(index int) token.Token

	// IsTokenKindFound reports whether a token of kind is present.
	IsTokenKindFound(kind token.Kind) bool
	// ImportUseIndexes lists import declaration keywords in file order.
	ImportUseIndexes() ([]int, error)
	// NextTokenOfKind finds the first token after index matching kinds, or -1.
	NextTokenOfKind(index int, kinds ...token.Kind) int
	PrevMeaningfulToken(index int) int
	NextMeaningfulToken(index int) int
	// FindBlockStart returns the opener matching the closer at closeIndex.
	FindBlockStart(block token.BlockType, closeIndex int) (int, error)
	// GeneratePartialCode returns the source of tokens start..end inclusive.
	GeneratePartialCode(start, end int) string

	ClearAt(index int)
	// ClearRange empties tokens start..end inclusive.
	ClearRange(start, end int)
	InsertAt(index int, items ...token.Token)
	// TokenizeFragment lexes a standalone snippet into classified tokens.
	TokenizeFragment(code string) []token.Token
}

// Fixer is a single rewrite rule.
type Fixer interface {
	// Name is the identifier used in configuration.
	Name() string
	Description() string
	// Priority orders fixers; higher runs first.
	Priority() int
	// IsCandidate is a cheap check that tells whether Fix may change anything.
	IsCandidate(tokens Tokens) bool
	// Fix rewrites tokens in place. path is used for diagnostics only.
	Fix(path string, tokens Tokens) error
}
