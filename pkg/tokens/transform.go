package tokens

import (
	"strings"

	"github.com/siyuan-infoblox/use-splitter/pkg/token"
)

// transform reclassifies tokens whose kind depends on their neighbours.
// Order matters: member names must be demoted before lambda and group detection.
func (s *Stream) transform() {
	s.transformMemberNames()
	s.transformEnum()
	s.transformLambdaUse()
	s.transformGroupImportBraces()
}

var keywordKinds = []token.Kind{
	token.Use, token.Namespace, token.Class, token.Interface, token.Trait,
	token.Function, token.Fn, token.Const, token.As,
}

// transformMemberNames turns keywords used as names (Foo::class, $obj->use,
// function use(), App\Interface\Foo) into plain identifiers.
func (s *Stream) transformMemberNames() {
	for i, t := range s.items {
		if !t.IsGivenKind(keywordKinds...) {
			continue
		}
		if s.inQualifiedName(i) {
			s.setKind(i, token.String)
			continue
		}
		prev := s.PrevMeaningfulToken(i)
		if prev < 0 {
			continue
		}
		if s.items[prev].IsGivenKind(token.DoubleColon, token.ObjectOperator, token.Function) {
			s.setKind(i, token.String)
		}
	}
}

// inQualifiedName reports whether the token at index is a segment of a
// namespaced name. Names cannot contain whitespace, so the separator must be
// directly adjacent.
func (s *Stream) inQualifiedName(index int) bool {
	if index > 0 && s.items[index-1].Kind == token.NsSeparator {
		return true
	}
	return index+1 < len(s.items) && s.items[index+1].Kind == token.NsSeparator
}

// transformEnum marks "enum Name" declarations as classy.
func (s *Stream) transformEnum() {
	for i, t := range s.items {
		if t.Kind != token.String || !strings.EqualFold(t.Text, "enum") {
			continue
		}
		next := s.NextMeaningfulToken(i)
		if next < 0 || s.items[next].Kind != token.String {
			continue
		}
		if prev := s.PrevMeaningfulToken(i); prev >= 0 && s.items[prev].IsGivenKind(token.DoubleColon, token.ObjectOperator, token.Function, token.NsSeparator) {
			continue
		}
		s.setKind(i, token.Enum)
	}
}

// transformLambdaUse marks closure binding lists: function () use ($x).
func (s *Stream) transformLambdaUse() {
	for i, t := range s.items {
		if t.Kind != token.Use {
			continue
		}
		if prev := s.PrevMeaningfulToken(i); prev >= 0 && s.items[prev].Kind == token.RParen {
			s.setKind(i, token.UseLambda)
		}
	}
}

// transformGroupImportBraces marks the braces of use A\{B, C}; declarations.
func (s *Stream) transformGroupImportBraces() {
	for i, t := range s.items {
		if t.Kind != token.Use {
			continue
		}
		end := s.NextTokenOfKind(i, token.Semicolon, token.CloseTag)
		if end < 0 {
			end = len(s.items)
		}
		for j := i + 1; j < end; j++ {
			if s.items[j].Kind != token.LBrace {
				continue
			}
			prev := s.PrevMeaningfulToken(j)
			if prev < 0 || s.items[prev].Kind != token.NsSeparator {
				break
			}
			closing, err := s.FindBlockEnd(token.BlockCurly, j)
			if err != nil || closing >= end {
				break
			}
			s.setKind(j, token.GroupImportBraceOpen)
			s.setKind(closing, token.GroupImportBraceClose)
			break
		}
	}
}
