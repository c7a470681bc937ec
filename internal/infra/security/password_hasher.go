package security

import (
	"account-activation-service/internal/domain"
	"account-activation-service/internal/domain/ports/adapter"

	"golang.org/x/crypto/bcrypt"
)

var _ adapter.PasswordHasher = (*BcryptHasher)(nil)

// BcryptHasher implements the PasswordHasher port with bcrypt, a slow
// adaptive hash. Comparison is constant-time by construction.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(raw string) (string, error) {
	if raw == "" {
		return "", domain.ErrInvalidArgument
	}
	b, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Compare(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
