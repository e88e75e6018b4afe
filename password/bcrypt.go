package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost matches the generation cost of the stored corpus of hashes.
const DefaultCost = 10

// Hasher hashes and verifies plaintext credentials. It is stateless and safe
// for concurrent use.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside
// bcrypt's supported range are rejected.
func NewHasher(cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errors.New("bcrypt cost out of range")
	}
	return &Hasher{cost: cost}, nil
}

// Hash returns the salted one-way hash of plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify reports whether plaintext matches hash. Any verification failure,
// including a malformed hash, reads as a mismatch.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// SyntheticHash is a well-formed bcrypt hash of an unguessable value. An
// orchestrator hardened against user-enumeration timing compares the supplied
// password against this when no user record exists, so the unknown-user path
// costs the same as a wrong password.
func (h *Hasher) SyntheticHash() (string, error) {
	return h.Hash("authcore-synthetic-credential-v1")
}
