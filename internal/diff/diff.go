// Package diff summarizes how much a rewrite touched a file. It uses
// github.com/pmezard/go-difflib/difflib's sequence matcher over lines; no
// patch text is produced.
package diff

import (
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// ChangedLines returns the number of lines of a that were replaced or
// deleted plus the number of lines of b that were inserted.
func ChangedLines(a, b []byte) int {
	m := difflib.NewMatcher(splitLinesKeepNL(string(a)), splitLinesKeepNL(string(b)))
	n := 0
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'r':
			n += max(op.I2-op.I1, op.J2-op.J1)
		case 'd':
			n += op.I2 - op.I1
		case 'i':
			n += op.J2 - op.J1
		}
	}
	return n
}

// splitLinesKeepNL splits into lines and keeps the line terminators, so a
// line that only lost trailing whitespace still compares unequal.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}
