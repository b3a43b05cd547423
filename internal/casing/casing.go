// Package casing implements the identifier case conversions the descriptor
// generator needs: protobuf's default json_name rule and the PascalCase
// rule used to name synthesized map-entry messages.
package casing

import "strings"

// JSONName converts a snake_case field name to lowerCamelCase by dropping
// underscores and uppercasing the letter that followed each one. This is
// the default json_name rule from the protobuf spec.
func JSONName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	upperNext := false
	for _, ch := range name {
		switch {
		case ch == '_':
			upperNext = true
		case upperNext:
			b.WriteRune(toUpper(ch))
			upperNext = false
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// PascalCase converts a snake_case name to PascalCase, used to name the
// synthetic nested message for a map field. A group's nested message takes
// the group's declared name as written.
func PascalCase(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	upperNext := true
	for _, ch := range name {
		switch {
		case ch == '_':
			upperNext = true
		case upperNext:
			b.WriteRune(toUpper(ch))
			upperNext = false
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}

func toUpper(ch rune) rune {
	if ch >= 'a' && ch <= 'z' {
		return ch - ('a' - 'A')
	}
	return ch
}
