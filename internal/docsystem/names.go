// Package docsystem holds the pure hierarchy model: name sanitization,
// version-chain arithmetic and cascade-delete planning. Nothing in this
// package performs I/O; the sync layer calls into it.
package docsystem

import (
	"fmt"
	"strings"
	"unicode"

	"inkwell/internal/config"
	"inkwell/internal/domain"
)

// forbiddenNameRunes are stripped from names. They either collide with
// path display ("/") or are illegal in common filesystems, which keeps
// exported filenames equal to on-screen names.
const forbiddenNameRunes = `/\:*?"<>|`

// SanitizeName trims and filters a raw name. Control characters and
// forbiddenNameRunes are removed, surrounding whitespace dropped.
// Returns a ValidationError when the result is empty or exceeds
// config.MaxNameLength. Idempotent: sanitizing an already-sanitized
// name returns it unchanged.
func SanitizeName(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsControl(r) {
			continue
		}
		if strings.ContainsRune(forbiddenNameRunes, r) {
			continue
		}
		b.WriteRune(r)
	}

	name := strings.TrimSpace(b.String())
	if name == "" {
		return "", &domain.ValidationError{Message: "name cannot be empty"}
	}
	if len([]rune(name)) > config.MaxNameLength {
		return "", &domain.ValidationError{
			Message: fmt.Sprintf("name exceeds %d characters", config.MaxNameLength),
		}
	}

	return name, nil
}
