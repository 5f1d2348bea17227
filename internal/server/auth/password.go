package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost matches the cost used by existing password hashes.
const DefaultBcryptCost = 10

// MaxPasswordBytes is bcrypt's input limit. Compare ignores anything past it,
// so longer passwords are refused rather than truncated.
const MaxPasswordBytes = 72

// BcryptHasher hashes passwords with a fresh random salt per call.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost. Costs outside
// bcrypt's range fall back to DefaultBcryptCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns the encoded bcrypt hash of plaintext. bcrypt rejects inputs
// longer than 72 bytes.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare reports whether plaintext matches hash. A mismatch is (false, nil);
// an error means the stored hash itself is malformed.
func (h *BcryptHasher) Compare(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
