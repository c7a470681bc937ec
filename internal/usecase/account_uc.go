package usecase

import (
	"context"
	"errors"

	"account-activation-service/internal/domain"
	"account-activation-service/internal/domain/model"
	"account-activation-service/internal/domain/ports/adapter"
	"account-activation-service/internal/domain/ports/repository"
	"account-activation-service/internal/infra/logging"
	"account-activation-service/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ AccountUseCase = (*accountUC)(nil)

// AccountUseCase exposes registration and credential verification.
type AccountUseCase interface {
	// Register stores a new inactive account. Fails with domain.ErrEmailTaken
	// when the normalized email is already registered.
	Register(ctx context.Context, email, rawPassword string) (*model.Account, error)
	// Verify authenticates an email+password pair. Unknown email and wrong
	// password both surface as domain.ErrInvalidCredentials so callers cannot
	// enumerate accounts.
	Verify(ctx context.Context, email, rawPassword string) (*model.Account, error)
}

type accountUC struct {
	accounts repository.AccountRepository
	hasher   adapter.PasswordHasher
	log      *zerolog.Logger
}

func NewAccountUseCase(accounts repository.AccountRepository, hasher adapter.PasswordHasher, logger *zerolog.Logger) *accountUC {
	return &accountUC{
		accounts: accounts,
		hasher:   hasher,
		log:      logger,
	}
}

func (u *accountUC) Register(ctx context.Context, email, rawPassword string) (*model.Account, error) {
	defer logging.TraceDuration(u.log, "AccountUC.Register")()

	hash, err := u.hasher.Hash(rawPassword)
	if err != nil {
		return nil, err
	}
	acc, err := model.NewAccount("", email, hash)
	if err != nil {
		return nil, err
	}

	if err := u.accounts.Create(ctx, repository.NoTX, acc); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			u.log.Warn().Str("email", acc.Email).Msg("registration rejected: email taken")
			return nil, err
		}
		u.log.Error().Err(err).Msg("registration failed")
		return nil, err
	}

	metrics.IncAccountRegistered()
	u.log.Info().Str("account_id", acc.ID).Str("email", acc.Email).Msg("account registered")
	return acc, nil
}

func (u *accountUC) Verify(ctx context.Context, email, rawPassword string) (*model.Account, error) {
	defer logging.TraceDuration(u.log, "AccountUC.Verify")()

	acc, err := u.accounts.FindByEmail(ctx, repository.NoTX, model.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Collapse into the generic failure; never reveal which half failed.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.hasher.Compare(rawPassword, acc.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return acc, nil
}
