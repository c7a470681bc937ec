package repository

import (
	"context"

	"account-activation-service/internal/domain/model"
)

// AccountRepository is the port for account persistence.
type AccountRepository interface {
	// Create stores a new inactive account. Returns domain.ErrEmailTaken when
	// the normalized email is already registered.
	Create(ctx context.Context, tx Tx, a *model.Account) error
	// FindByEmail looks an account up by normalized email.
	FindByEmail(ctx context.Context, tx Tx, email string) (*model.Account, error)
	FindByID(ctx context.Context, tx Tx, id string) (*model.Account, error)
	// Activate sets is_active=TRUE and bumps updated_at. No-op on an already
	// active account.
	Activate(ctx context.Context, tx Tx, id string) error
}
