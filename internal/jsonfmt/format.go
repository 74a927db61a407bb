// Package jsonfmt reformats JSON text and canonicalizes parsed JSON values.
//
// Formatting is purely textual: it rewrites the original source instead of
// re-serializing a parsed value, so number formatting, key order, and
// string contents survive untouched.
package jsonfmt

import (
	"strings"
)

// Format reindents source with the given indent string.
//
// The scanner keeps two pieces of state: the current nesting depth and
// whether it is inside a string literal. String boundaries are detected by
// an unescaped double quote, i.e. a quote not immediately preceded by a
// backslash. An escaped backslash followed by a closing quote ("x\\")
// defeats that check; the quote is then miscounted as escaped. Known
// limitation of the single-pass scan, kept deliberately cheap.
func Format(source, indent string) string {
	var out strings.Builder
	out.Grow(len(source) * 2)

	depth := 0
	inString := false

	for i := 0; i < len(source); i++ {
		c := source[i]

		if inString {
			out.WriteByte(c)
			if c == '"' && i > 0 && source[i-1] != '\\' {
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
			out.WriteByte(c)
		case '{', '[':
			depth++
			out.WriteByte(c)
			out.WriteByte('\n')
			out.WriteString(strings.Repeat(indent, depth))
		case '}', ']':
			// Depth never goes negative even when the escape heuristic
			// miscounts a string boundary; the worst case is wrong
			// indentation, not a panic.
			if depth > 0 {
				depth--
			}
			out.WriteByte('\n')
			out.WriteString(strings.Repeat(indent, depth))
			out.WriteByte(c)
		case ',':
			out.WriteByte(c)
			out.WriteByte('\n')
			out.WriteString(strings.Repeat(indent, depth))
		case ':':
			out.WriteByte(c)
			out.WriteByte(' ')
		case ' ', '\t', '\n':
			// insignificant whitespace between tokens
		default:
			out.WriteByte(c)
		}
	}

	return out.String()
}
