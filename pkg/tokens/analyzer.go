package tokens

import (
	"fmt"

	"github.com/siyuan-infoblox/use-splitter/pkg/token"
)

// ImportUseIndexes returns the indices of every import "use" keyword in file
// order. Bodies of classes, interfaces, traits and enums are skipped, so trait
// "use" statements are never reported; closure "use" is already UseLambda and
// relative names such as namespace\f() are plain identifiers.
func (s *Stream) ImportUseIndexes() ([]int, error) {
	var uses []int
	for i := 0; i < len(s.items); i++ {
		t := s.items[i]
		switch {
		case t.Kind == token.Namespace:
			next := s.NextTokenOfKind(i, token.Semicolon, token.LBrace)
			if next >= 0 && s.items[next].Kind == token.LBrace {
				i = next
			}

		case t.IsClassy():
			open := s.NextTokenOfKind(i, token.LBrace)
			if open < 0 {
				return uses, fmt.Errorf("%w: %s body at index %d", ErrBlockNotFound, t.Kind, i)
			}
			end, err := s.FindBlockEnd(token.BlockCurly, open)
			if err != nil {
				return uses, err
			}
			i = end

		case t.Kind == token.Use:
			uses = append(uses, i)
		}
	}
	return uses, nil
}
