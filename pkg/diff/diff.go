// Package diff renders unified patches for fixed files.
package diff

import (
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// Options controls patch generation.
type Options struct {
	// Context is the number of context lines around each hunk. If 0, defaults to 3.
	Context int
}

// Unified produces a classic unified patch for a↦b, or "" when they are equal.
func Unified(aName, bName string, a, b []byte, opt Options) (string, error) {
	if string(a) == string(b) {
		return "", nil
	}

	ctx := opt.Context
	if ctx <= 0 {
		ctx = 3
	}

	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(string(a)),
		B:        splitLinesKeepNL(string(b)),
		FromFile: aName,
		ToFile:   bName,
		Context:  ctx,
	}
	return difflib.GetUnifiedDiffString(u)
}

// splitLinesKeepNL keeps the newline on every line so that CRLF and a missing
// final newline survive into the patch.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
