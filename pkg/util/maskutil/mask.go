// Package maskutil masks personally identifying strings before they reach
// log output. It is a pure string transform with no logging dependency.
package maskutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// Mode selects how aggressively values are masked.
type Mode int

const (
	// ModePartial keeps the first and last character of each segment.
	ModePartial Mode = iota
	// ModeHashed replaces the value with a truncated one-way hash.
	ModeHashed
)

// Recipient masks an email address (or any identifier) for log output.
// Partial mode keeps the first and last character of the local part and of
// the whole domain: usuario@dominio.com -> u*****o@d*********m.
func Recipient(value string, mode Mode) string {
	if value == "" {
		return "***"
	}
	if mode == ModeHashed {
		return Hash(value)
	}
	if local, domain, ok := strings.Cut(value, "@"); ok && local != "" && domain != "" {
		return maskSegment(local) + "@" + maskSegment(domain)
	}
	return maskSegment(value)
}

// Hash returns a truncated SHA-256 digest of value, prefixed so log readers
// can tell a hash from a partially masked value.
func Hash(value string) string {
	sum := sha256.Sum256([]byte(value))
	return "hash:" + hex.EncodeToString(sum[:])[:8] + "..."
}

// Truncate shortens message bodies destined for log output. The cut is at a
// rune boundary so the result stays valid UTF-8.
func Truncate(message string, max int) string {
	if utf8.RuneCountInString(message) <= max {
		return message
	}
	return string([]rune(message)[:max]) + "... [truncated]"
}

func maskSegment(s string) string {
	if len(s) <= 2 {
		return "***"
	}
	stars := len(s) - 2
	if stars < 4 {
		stars = 4
	}
	return s[:1] + strings.Repeat("*", stars) + s[len(s)-1:]
}
