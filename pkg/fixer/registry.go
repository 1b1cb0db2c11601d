package fixer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownRule is returned when configuration names a fixer that does not exist.
var ErrUnknownRule = errors.New("unknown rule")

func registry() []Fixer {
	return []Fixer{
		NewSingleImportPerStatement(),
	}
}

// All returns every known fixer in execution order.
func All() []Fixer {
	fixers := registry()
	sortFixers(fixers)
	return fixers
}

// Lookup finds a fixer by name.
func Lookup(name string) (Fixer, bool) {
	for _, f := range registry() {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

// Enabled returns the fixers switched on by rules, in execution order. Rules
// missing from the map stay enabled; a nil map enables everything.
func Enabled(rules map[string]bool) ([]Fixer, error) {
	var unknown []string
	for name := range rules {
		if _, ok := Lookup(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: %s", ErrUnknownRule, strings.Join(unknown, ", "))
	}

	var fixers []Fixer
	for _, f := range All() {
		if on, ok := rules[f.Name()]; ok && !on {
			continue
		}
		fixers = append(fixers, f)
	}
	return fixers, nil
}

// Signature identifies a fixer set; it changes whenever the set changes.
func Signature(fixers []Fixer) string {
	names := make([]string, 0, len(fixers))
	for _, f := range fixers {
		names = append(names, f.Name())
	}
	return strings.Join(names, ",")
}

func sortFixers(fixers []Fixer) {
	sort.SliceStable(fixers, func(i, j int) bool {
		if fixers[i].Priority() != fixers[j].Priority() {
			return fixers[i].Priority() > fixers[j].Priority()
		}
		return fixers[i].Name() < fixers[j].Name()
	})
}
