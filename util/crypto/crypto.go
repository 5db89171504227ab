// Package crypto provides password hashing, verification, and the
// complexity rules applied to plaintext passwords before hashing.
package crypto

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// ErrWeakPassword is returned when a plaintext password does not satisfy the
// complexity rules.
var ErrWeakPassword = errors.New("password must be 8-30 characters and contain a lowercase letter, an uppercase letter and a digit")

// HashPasswordAsBcrypt generates a bcrypt hash of the given password.
func HashPasswordAsBcrypt(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash verifies if the given password matches the bcrypt hash.
func CheckPasswordHash(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CheckPasswordComplexity validates a plaintext password: 8-30 characters with
// at least one lowercase letter, one uppercase letter and one digit.
func CheckPasswordComplexity(password string) error {
	if len(password) < 8 || len(password) > 30 {
		return ErrWeakPassword
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLower || !hasUpper || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}
