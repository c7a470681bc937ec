package model

import (
	"strings"
	"time"

	"account-activation-service/internal/domain"

	"github.com/google/uuid"
)

// Account is a domain entity representing a registered user account.
// An account is created inactive and becomes active exactly once, by a
// successful code redemption.
type Account struct {
	ID           string
	Email        string // stored normalized (lower-case, trimmed)
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail is the single normalization rule used for uniqueness and
// lookup: emails compare case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NewAccount(id, email, passwordHash string) (*Account, error) {
	if id == "" {
		id = uuid.NewString()
	}
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidArgument
	}
	if passwordHash == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Account{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		IsActive:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (a *Account) IsZero() bool { return a == nil || a.ID == "" }

// Activate flips the account to its terminal state and bumps UpdatedAt.
// Re-activating an already-active account is a no-op.
func (a *Account) Activate() {
	if a.IsActive {
		return
	}
	a.IsActive = true
	a.UpdatedAt = time.Now()
}
