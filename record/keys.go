package record

import "strings"

// NormalizeKey maps an arbitrary session identifier to a backend-safe
// document key. Each of the characters forbidden in document keys
// (. $ # [ ] /) is replaced 1:1 with '_'; everything else passes through
// unchanged, so length and character positions are preserved.
func NormalizeKey(raw string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '$', '#', '[', ']', '/':
			return '_'
		}
		return r
	}, raw)
}
