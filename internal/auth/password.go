package auth

import (
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// Passwords are always compared against a salted bcrypt hash; there is no
// plain-text comparison path.

var passwordDigit = regexp.MustCompile(`[0-9]`)
var passwordSymbol = regexp.MustCompile(`[!@#$%^&*]`)

// ValidatePasswordPolicy enforces the registration password policy.
func ValidatePasswordPolicy(password string) error {
	if len(password) < 8 || !passwordDigit.MatchString(password) || !passwordSymbol.MatchString(password) {
		return errors.New("password must be at least 8 characters and include a digit and a symbol (!@#$%^&*)")
	}
	return nil
}

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
