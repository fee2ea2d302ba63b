package docsystem

import (
	"strings"
	"unicode"
)

// CountWords counts whitespace-separated tokens in a document payload.
// The payload is treated as plain text; editor markup inside it simply
// counts as words, which matches what the editor surface reports.
func CountWords(content string) int {
	words := strings.FieldsFunc(content, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return len(words)
}

// CountChars counts runes, not bytes, so multi-byte scripts are not
// over-counted.
func CountChars(content string) int {
	return len([]rune(content))
}
