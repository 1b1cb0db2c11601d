package fixer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/siyuan-infoblox/use-splitter/pkg/token"
)

// SingleImportPerStatementName is the configuration name of the rule.
const SingleImportPerStatementName = "single_import_per_statement"

// ErrMalformedImport is returned for an import declaration with neither a
// semicolon nor a close tag after it.
var ErrMalformedImport = errors.New("import declaration is not terminated")

// SingleImportPerStatement splits "use A, B;" and "use A\{B, C};" into one
// declaration per imported symbol.
type SingleImportPerStatement struct{}

// NewSingleImportPerStatement creates the rule.
func NewSingleImportPerStatement() *SingleImportPerStatement {
	return &SingleImportPerStatement{}
}

func (f *SingleImportPerStatement) Name() string {
	return SingleImportPerStatementName
}

func (f *SingleImportPerStatement) Description() string {
	return "There MUST be one use keyword per declaration."
}

func (f *SingleImportPerStatement) Priority() int {
	return 1
}

func (f *SingleImportPerStatement) IsCandidate(tokens Tokens) bool {
	return tokens.IsTokenKindFound(token.Use)
}

// Fix rewrites declarations last to first so that indices of the ones not yet
// visited stay valid while earlier insertions grow the stream.
func (f *SingleImportPerStatement) Fix(path string, tokens Tokens) error {
	uses, err := tokens.ImportUseIndexes()
	if err != nil {
		return err
	}
	for i := len(uses) - 1; i >= 0; i-- {
		if err := f.fixDeclaration(path, tokens, uses[i]); err != nil {
			return err
		}
	}
	return nil
}

// declaration is the shape of one import statement.
type declaration struct {
	// prefix goes between the keyword and each symbol; it starts with a space.
	prefix string
	// body is the comma separated symbol list.
	body    string
	grouped bool
	// typed is set for "use function" and "use const" statements.
	typed bool
}

func (f *SingleImportPerStatement) fixDeclaration(path string, tokens Tokens, index int) error {
	end := tokens.NextTokenOfKind(index, token.Semicolon, token.CloseTag)
	if end < 0 {
		return fmt.Errorf("%w: use at token %d", ErrMalformedImport, index)
	}

	decl, err := declarationAt(tokens, index, end)
	if err != nil {
		return err
	}

	entries := importEntries(tokens, decl.body)
	if len(entries) < 2 {
		return nil
	}

	keyword := tokens.At(index).Text
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := decl.render(keyword, e.name)
		if e.comment != "" {
			line += " " + e.comment
		}
		lines = append(lines, line)
	}
	code := strings.Join(lines, "\n"+detectIndent(tokens, index))

	last := end - 1
	if tokens.At(end).Kind == token.Semicolon {
		last = end
	}
	tokens.ClearRange(index, last)

	fragment := tokens.TokenizeFragment("<?php " + code)
	inserted := make([]token.Token, 0, len(fragment))
	for i, t := range fragment {
		// the open tag only exists to make the fragment lexable on its own
		if i == 0 || t.IsEmpty() {
			continue
		}
		inserted = append(inserted, t)
	}
	tokens.InsertAt(index, inserted...)

	log.Debug().
		Str("file", path).
		Int("index", index).
		Int("declarations", len(lines)).
		Bool("grouped", decl.grouped).
		Msg("split import declaration")
	return nil
}

// declarationAt reads the statement spanning index..end, where end is its terminator.
func declarationAt(tokens Tokens, index, end int) (declaration, error) {
	typed := false
	next := tokens.NextMeaningfulToken(index)
	if next > index && next+1 < end && tokens.At(next).IsGivenKind(token.Function, token.Const) &&
		tokens.At(next+1).Kind != token.NsSeparator {
		typed = true
	}

	prev := tokens.PrevMeaningfulToken(end)
	if prev > index && tokens.At(prev).Kind == token.GroupImportBraceClose {
		open, err := tokens.FindBlockStart(token.BlockGroupImport, prev)
		if err != nil {
			return declaration{}, err
		}
		return declaration{
			prefix:  " " + strings.TrimLeftFunc(tokens.GeneratePartialCode(index+1, open-1), unicode.IsSpace),
			body:    tokens.GeneratePartialCode(open+1, prev-1),
			grouped: true,
			typed:   typed,
		}, nil
	}

	if typed {
		return declaration{
			prefix: " " + tokens.At(next).Text + " ",
			body:   tokens.GeneratePartialCode(next+1, end-1),
			typed:  true,
		}, nil
	}
	return declaration{
		prefix: " ",
		body:   tokens.GeneratePartialCode(index+1, end-1),
	}, nil
}

// render builds a single-symbol statement. Inside an untyped group a symbol
// may carry its own "function" or "const"; it moves in front of the prefix.
func (d declaration) render(keyword, part string) string {
	if d.grouped && !d.typed {
		if kind, name, ok := symbolKind(part); ok {
			return keyword + " " + kind + d.prefix + name + ";"
		}
	}
	return keyword + d.prefix + part + ";"
}

func symbolKind(part string) (kind, name string, ok bool) {
	i := strings.IndexFunc(part, unicode.IsSpace)
	if i <= 0 {
		return "", part, false
	}
	switch strings.ToLower(part[:i]) {
	case "function", "const":
		return part[:i], strings.TrimSpace(part[i:]), true
	}
	return "", part, false
}

// importEntry is one symbol of a declaration plus the comments that trailed it.
type importEntry struct {
	name    string
	comment string
}

// importEntries splits body into symbols. Comments after a symbol are moved
// behind the synthesized terminator so a line comment cannot swallow it; a
// part holding nothing but comments joins the entry before it.
func importEntries(tokens Tokens, body string) []importEntry {
	var entries []importEntry
	for _, part := range splitParts(body) {
		name, comment := splitTrailingComments(tokens, part)
		if name != "" {
			entries = append(entries, importEntry{name: name, comment: comment})
			continue
		}
		if n := len(entries); n > 0 {
			entries[n-1].comment = strings.TrimSpace(entries[n-1].comment + " " + comment)
		}
	}
	return entries
}

func splitTrailingComments(tokens Tokens, part string) (name, comment string) {
	// index 0 of the fragment is the open tag
	fragment := tokens.TokenizeFragment("<?php " + part)
	last := 0
	for i := 1; i < len(fragment); i++ {
		if fragment[i].IsMeaningful() {
			last = i
		}
	}
	if last == 0 {
		return "", strings.TrimSpace(part)
	}
	var head, tail strings.Builder
	for i, t := range fragment[1:] {
		if i+1 <= last {
			head.WriteString(t.Text)
		} else {
			tail.WriteString(t.Text)
		}
	}
	return strings.TrimSpace(head.String()), strings.TrimSpace(tail.String())
}

// splitParts splits on commas and drops blank entries left by trailing commas.
func splitParts(body string) []string {
	var parts []string
	for _, p := range strings.Split(body, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// detectIndent returns the leading whitespace of the line holding the token at
// index, taken from the whitespace token right before it.
func detectIndent(tokens Tokens, index int) string {
	if index == 0 {
		return ""
	}
	prev := tokens.At(index - 1)
	if !prev.IsWhitespace() {
		return ""
	}
	lines := strings.Split(prev.Text, "\n")
	return lines[len(lines)-1]
}
