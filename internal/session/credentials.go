// Package session issues the opaque credentials attached to a new profile.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Credentials are generated once per profile. Token is the only credential a
// client holds. PasswordHash fills the users.password NOT NULL column; its
// secret is discarded, so no password login can match it.
type Credentials struct {
	Token        string
	Email        string
	PasswordHash string
}

// NewCredentials creates a uuid session token, a demo email for name, and a
// bcrypt hash of a random secret.
func NewCredentials(name string) (Credentials, error) {
	token := uuid.NewString()

	secret := make([]byte, 16)
	if _, err := rand.Read(secret); err != nil {
		return Credentials{}, fmt.Errorf("generate secret: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(secret)), bcrypt.DefaultCost)
	if err != nil {
		return Credentials{}, fmt.Errorf("hash secret: %w", err)
	}

	return Credentials{
		Token:        token,
		Email:        DemoEmail(name, token),
		PasswordHash: string(hash),
	}, nil
}

// DemoEmail lowercases name, joins its words with dots, and appends the first
// 8 characters of token so repeated names stay unique:
// "Ada King" → "ada.king.0123abcd@demo.com".
func DemoEmail(name, token string) string {
	local := strings.Join(strings.Fields(strings.ToLower(name)), ".")
	if local == "" {
		local = "user"
	}
	suffix := strings.ReplaceAll(token, "-", "")
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return local + "." + suffix + "@demo.com"
}
