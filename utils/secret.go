package utils

import (
	"fmt"

	"github.com/sethvargo/go-password/password"
	"golang.org/x/crypto/bcrypt"
)

// GenerateAdminSecret creates a new shared editor secret and its bcrypt
// hash. The plaintext is shown once at startup and never persisted; only
// the hash reaches the settings file.
func GenerateAdminSecret() (plaintext, hash string, err error) {
	plaintext, err = password.Generate(24, 6, 0, false, false)
	if err != nil {
		return "", "", fmt.Errorf("generate admin secret: %w", err)
	}
	hash, err = HashSecret(plaintext)
	if err != nil {
		return "", "", err
	}
	return plaintext, hash, nil
}

// HashSecret hashes a secret for storage.
func HashSecret(secret string) (string, error) {
	raw, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash admin secret: %w", err)
	}
	return string(raw), nil
}

// VerifySecret reports whether the presented secret matches the stored
// hash. bcrypt comparison leaks nothing about how close a guess was.
func VerifySecret(hash, presented string) bool {
	if hash == "" || presented == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(presented)) == nil
}
