package repository

import (
	"context"
	"time"

	"account-activation-service/internal/domain/model"
)

// ActivationCodeRepository is the port for managing activation codes.
// The backing store enforces at most one code per account.
type ActivationCodeRepository interface {
	// Replace atomically installs the code for its account, superseding any
	// existing one. A concurrent reader observes either the old or the new
	// code, never two and never none.
	Replace(ctx context.Context, tx Tx, code *model.ActivationCode) error
	// FindByAccount returns the stored code for the account, expired or not.
	// Inside a transaction the row is locked (FOR UPDATE) so concurrent
	// redeemers serialize. Returns domain.ErrNoCodeRequested when absent.
	FindByAccount(ctx context.Context, tx Tx, accountID string) (*model.ActivationCode, error)
	// Consume deletes the stored code after a successful redemption.
	// Returns domain.ErrNoCodeRequested when there was nothing to delete.
	Consume(ctx context.Context, tx Tx, accountID string) error
	// DeleteExpired purges codes whose expiry passed before cutoff. Hygiene
	// only; reads reject expired codes regardless.
	DeleteExpired(ctx context.Context, tx Tx, cutoff time.Time) (int64, error)
}
