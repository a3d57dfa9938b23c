package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashCode stores the confirmation code one-way; the plaintext only ever
// travels in the signup email.
func HashCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckCode reports whether the submitted code matches the stored hash.
func CheckCode(code, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
