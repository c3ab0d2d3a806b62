// Package textutil holds the whitespace rules applied to every eligible
// source file. The rules operate on raw bytes: nothing is decoded or
// validated, and bytes outside a match are copied through unchanged.
package textutil

import "regexp"

// Rule is a single regular-expression substitution over a file buffer.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Repl    []byte
}

// rules are applied in order; later rules see the output of earlier ones.
var rules = []Rule{
	// Anchored at buffer start only (no multi-line mode), so it only ever
	// rewrites a leading CRLF to itself.
	{Name: "crlf-at-start", Pattern: regexp.MustCompile(`\A\r\n`), Repl: []byte("\r\n")},
	{Name: "expand-tabs", Pattern: regexp.MustCompile(`\t`), Repl: []byte("    ")},
	{Name: "trim-trailing", Pattern: regexp.MustCompile(`[ \t]+\r`), Repl: []byte("\r")},
}

// Rules returns a copy of the ordered rule list.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Normalize applies every rule to b and returns the result. The input
// slice is never modified.
func Normalize(b []byte) []byte {
	out := b
	for _, r := range rules {
		out = r.Pattern.ReplaceAllLiteral(out, r.Repl)
	}
	return out
}
