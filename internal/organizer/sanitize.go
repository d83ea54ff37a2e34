package organizer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// maxNameBytes caps sanitized path segments well under common filesystem
// limits (255 bytes) to leave room for collision suffixes and extensions.
const maxNameBytes = 200

// fallbackName replaces segments that sanitize to nothing.
const fallbackName = "Unknown"

// SanitizeName converts an arbitrary metadata value into a safe path segment.
// Characters rejected by Windows filesystems are stripped, surrounding spaces
// and periods trimmed, internal whitespace collapsed, and the result is
// truncated to maxNameBytes of UTF-8. Empty results become "Unknown". The
// function is idempotent.
func SanitizeName(name string) string {
	name = norm.NFC.String(name)

	var cleaned strings.Builder
	cleaned.Grow(len(name))
	for _, r := range name {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
		default:
			cleaned.WriteRune(r)
		}
	}

	sanitized := strings.Trim(cleaned.String(), " .")
	sanitized = strings.Join(strings.Fields(sanitized), " ")

	if len(sanitized) > maxNameBytes {
		runes := []rune(sanitized)
		for len(string(runes)) > maxNameBytes {
			runes = runes[:len(runes)-1]
		}
		// Truncation can land on a space or period, which the earlier trim
		// already removed from the original ends. Trim again so the result
		// round-trips through another sanitize unchanged.
		sanitized = strings.Trim(string(runes), " .")
	}

	if sanitized == "" {
		return fallbackName
	}
	return sanitized
}
