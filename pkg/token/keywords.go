package token

import "strings"

var keywords = map[string]Kind{
	"use":       Use,
	"namespace": Namespace,
	"class":     Class,
	"interface": Interface,
	"trait":     Trait,
	"function":  Function,
	"fn":        Fn,
	"const":     Const,
	"as":        As,
}

// LookupKeyword reports the keyword kind for ident. PHP keywords are case-insensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[strings.ToLower(ident)]
	return k, ok
}
