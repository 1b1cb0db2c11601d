// Package tokens implements the mutable, index-addressed token stream the
// fixers rewrite in place.
//
// The stream is an arena: a growable slice of tokens where clearing keeps the
// slot and insertion shifts everything after the insertion point. Callers that
// insert while iterating must walk indices from the highest one down.
package tokens

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/siyuan-infoblox/use-splitter/pkg/lexer"
	"github.com/siyuan-infoblox/use-splitter/pkg/token"
)

// ErrBlockNotFound is returned when a delimiter has no matching counterpart.
var ErrBlockNotFound = errors.New("matching block delimiter not found")

// Stream is an ordered, randomly indexable token sequence.
type Stream struct {
	items []token.Token
	kinds map[token.Kind]int
}

// FromCode tokenizes code and classifies context-dependent tokens.
func FromCode(code string) *Stream {
	s := FromTokens(lexer.Lex(code))
	s.transform()
	return s
}

// FromTokens wraps already classified tokens. The slice is copied.
func FromTokens(items []token.Token) *Stream {
	s := &Stream{
		items: slices.Clone(items),
		kinds: make(map[token.Kind]int),
	}
	for _, t := range s.items {
		s.track(t, 1)
	}
	return s
}

func (s *Stream) track(t token.Token, delta int) {
	if t.Kind == token.Empty {
		return
	}
	s.kinds[t.Kind] += delta
}

// Len returns the number of slots, cleared ones included.
func (s *Stream) Len() int {
	return len(s.items)
}

// At returns the token at index.
func (s *Stream) At(index int) token.Token {
	return s.items[index]
}

// Code regenerates the whole source.
func (s *Stream) Code() string {
	return s.GeneratePartialCode(0, len(s.items)-1)
}

// GeneratePartialCode returns the verbatim source of tokens start..end, both inclusive.
func (s *Stream) GeneratePartialCode(start, end int) string {
	var b strings.Builder
	for i := max(start, 0); i <= end && i < len(s.items); i++ {
		b.WriteString(s.items[i].Text)
	}
	return b.String()
}

// IsTokenKindFound reports whether at least one token of kind is present.
func (s *Stream) IsTokenKindFound(kind token.Kind) bool {
	return s.kinds[kind] > 0
}

// Count returns how many tokens of kind are present.
func (s *Stream) Count(kind token.Kind) int {
	return s.kinds[kind]
}

// NextTokenOfKind returns the index of the first token after index whose kind
// is one of kinds, or -1.
func (s *Stream) NextTokenOfKind(index int, kinds ...token.Kind) int {
	for i := index + 1; i < len(s.items); i++ {
		if s.items[i].IsGivenKind(kinds...) {
			return i
		}
	}
	return -1
}

// PrevMeaningfulToken returns the index of the nearest meaningful token before index, or -1.
func (s *Stream) PrevMeaningfulToken(index int) int {
	for i := min(index, len(s.items)) - 1; i >= 0; i-- {
		if s.items[i].IsMeaningful() {
			return i
		}
	}
	return -1
}

// NextMeaningfulToken returns the index of the nearest meaningful token after index, or -1.
func (s *Stream) NextMeaningfulToken(index int) int {
	for i := index + 1; i < len(s.items); i++ {
		if s.items[i].IsMeaningful() {
			return i
		}
	}
	return -1
}

// FindBlockEnd returns the index of the delimiter closing the block opened at openIndex.
func (s *Stream) FindBlockEnd(block token.BlockType, openIndex int) (int, error) {
	open, closing := block.Delimiters()
	if openIndex < 0 || openIndex >= len(s.items) || s.items[openIndex].Kind != open {
		return -1, fmt.Errorf("%w: no %s opening at index %d", ErrBlockNotFound, block, openIndex)
	}
	depth := 0
	for i := openIndex; i < len(s.items); i++ {
		switch s.items[i].Kind {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("%w: unclosed %s at index %d", ErrBlockNotFound, block, openIndex)
}

// FindBlockStart returns the index of the delimiter opening the block closed at closeIndex.
func (s *Stream) FindBlockStart(block token.BlockType, closeIndex int) (int, error) {
	open, closing := block.Delimiters()
	if closeIndex < 0 || closeIndex >= len(s.items) || s.items[closeIndex].Kind != closing {
		return -1, fmt.Errorf("%w: no %s closing at index %d", ErrBlockNotFound, block, closeIndex)
	}
	depth := 0
	for i := closeIndex; i >= 0; i-- {
		switch s.items[i].Kind {
		case closing:
			depth++
		case open:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("%w: unopened %s at index %d", ErrBlockNotFound, block, closeIndex)
}

// ClearAt empties the token at index. The slot stays until ClearEmptyTokens.
func (s *Stream) ClearAt(index int) {
	s.track(s.items[index], -1)
	s.items[index] = token.Token{}
}

// ClearRange empties tokens start..end, both inclusive.
func (s *Stream) ClearRange(start, end int) {
	for i := start; i <= end; i++ {
		s.ClearAt(i)
	}
}

// ClearEmptyTokens drops every slot without text.
func (s *Stream) ClearEmptyTokens() {
	s.items = slices.DeleteFunc(s.items, token.Token.IsEmpty)
}

// InsertAt splices items in before index; tokens from index onward shift right.
func (s *Stream) InsertAt(index int, items ...token.Token) {
	s.items = slices.Insert(s.items, index, items...)
	for _, t := range items {
		s.track(t, 1)
	}
}

// TokenizeFragment lexes a standalone snippet with the same rules as FromCode.
func (s *Stream) TokenizeFragment(code string) []token.Token {
	return FromCode(code).items
}

func (s *Stream) setKind(index int, kind token.Kind) {
	s.track(s.items[index], -1)
	s.items[index].Kind = kind
	s.track(s.items[index], 1)
}
