package model

import (
	"time"

	"account-activation-service/internal/domain"

	"github.com/oklog/ulid/v2"
)

// ActivationCode represents the single short-lived numeric code an account may
// hold at any time. Issuing a new code fully replaces the previous one; the
// storage layer enforces at-most-one-per-account.
type ActivationCode struct {
	ID        string
	AccountID string
	Code      string // fixed-width numeric, e.g. "0417"
	CreatedAt time.Time
	ExpiresAt time.Time
}

func NewActivationCode(accountID, code string, ttl time.Duration) (*ActivationCode, error) {
	if accountID == "" || code == "" || ttl <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &ActivationCode{
		ID:        ulid.Make().String(),
		AccountID: accountID,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// Expired reports whether the code is no longer redeemable at the given
// instant. Expiry is enforced at read time; the row may still exist.
func (c *ActivationCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Matches performs the exact, case-sensitive comparison required for
// redemption. No normalization.
func (c *ActivationCode) Matches(submitted string) bool {
	return c.Code == submitted
}
