// Package auth provides authentication and authorization for the REST API:
// password hashing, bearer tokens, the signup/signin flow and the
// middlewares that gate protected routes.
//
//revive:disable-next-line:var-naming
package auth

import (
	"github.com/ortelius/cms-auth/internal/apperror"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost used when none is configured
const DefaultCost = 12

// ============================================================================
// PASSWORD HASHING
// ============================================================================

// Hasher hashes and verifies passwords with bcrypt
type Hasher struct {
	Cost int
}

// NewHasher returns a Hasher for the given cost, falling back to DefaultCost
// when the cost is outside bcrypt's range
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{Cost: cost}
}

// Hash generates a salted bcrypt digest of the password
func (h *Hasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", apperror.Wrap(apperror.Unclassified, err)
	}
	return string(bytes), nil
}

// Verify compares a password with a digest
func (h *Hasher) Verify(password, digest string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	return err == nil
}
