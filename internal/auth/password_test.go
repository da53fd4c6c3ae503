package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestValidatePasswordPolicy(t *testing.T) {
	valid := []string{"abcdef1!", "P@ssw0rd", "longer-password-9$"}
	for _, password := range valid {
		assert.NoError(t, ValidatePasswordPolicy(password), password)
	}

	invalid := []string{
		"",
		"short1!",          // under 8 characters
		"nodigits!",        // missing digit
		"nosymbol1",        // missing symbol
		"with space but 1", // space is not an accepted symbol
	}
	for _, password := range invalid {
		assert.Error(t, ValidatePasswordPolicy(password), password)
	}
}

func TestHashAndComparePassword(t *testing.T) {
	hashed, err := HashPassword("P@ssw0rd", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "P@ssw0rd", hashed)

	assert.NoError(t, ComparePassword(hashed, "P@ssw0rd"))
	assert.Error(t, ComparePassword(hashed, "wrong-pass"))
}

func TestHashPassword_SaltedHashesDiffer(t *testing.T) {
	first, err := HashPassword("P@ssw0rd", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("P@ssw0rd", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
