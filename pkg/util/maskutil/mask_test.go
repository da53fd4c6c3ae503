package maskutil

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestRecipient_PartialMasksBothEmailSegments(t *testing.T) {
	masked := Recipient("usuario@dominio.com", ModePartial)

	assert.Equal(t, "u*****o@d*********m", masked)
	assert.NotContains(t, masked, "usuario")
	assert.NotContains(t, masked, "dominio")
}

func TestRecipient_ShortSegmentsFullyMasked(t *testing.T) {
	assert.Equal(t, "***@***", Recipient("ab@cd", ModePartial))
	assert.Equal(t, "***", Recipient("", ModePartial))
}

func TestRecipient_NonEmailValue(t *testing.T) {
	masked := Recipient("someidentifier", ModePartial)
	assert.True(t, strings.HasPrefix(masked, "s"))
	assert.True(t, strings.HasSuffix(masked, "r"))
	assert.Contains(t, masked, "****")
}

func TestRecipient_HashedModeNeverLeaksValue(t *testing.T) {
	masked := Recipient("usuario@dominio.com", ModeHashed)

	assert.True(t, strings.HasPrefix(masked, "hash:"))
	assert.True(t, strings.HasSuffix(masked, "..."))
	assert.NotContains(t, masked, "usuario")

	// Same input, same hash; different input, different hash.
	assert.Equal(t, masked, Recipient("usuario@dominio.com", ModeHashed))
	assert.NotEqual(t, masked, Recipient("otro@dominio.com", ModeHashed))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 100))

	long := strings.Repeat("a", 150)
	truncated := Truncate(long, 100)
	assert.Len(t, truncated, 100+len("... [truncated]"))
	assert.True(t, strings.HasSuffix(truncated, "... [truncated]"))
}

func TestTruncate_CutsAtRuneBoundary(t *testing.T) {
	long := strings.Repeat("á", 150)
	truncated := Truncate(long, 100)

	assert.True(t, utf8.ValidString(truncated))
	assert.Equal(t, strings.Repeat("á", 100)+"... [truncated]", truncated)

	// 150 two-byte runes is 300 bytes but only 150 characters, under a
	// 200-character cap.
	assert.Equal(t, long, Truncate(long, 200))
}
