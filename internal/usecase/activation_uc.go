package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"account-activation-service/internal/domain"
	"account-activation-service/internal/domain/model"
	"account-activation-service/internal/domain/ports/adapter"
	"account-activation-service/internal/domain/ports/repository"
	"account-activation-service/internal/infra/logging"
	"account-activation-service/internal/infra/metrics"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
)

// Compile-time check
var _ ActivationUseCase = (*activationUC)(nil)

// ActivationUseCase drives the account activation state machine:
// Pending -> CodeIssued -> Active. Every operation re-verifies credentials.
type ActivationUseCase interface {
	// RequestCode issues a fresh code for the account, replacing any prior
	// one, and hands it to the mailer. A delivery failure surfaces as
	// domain.ErrDeliveryFailed but leaves the issued code valid and stored.
	RequestCode(ctx context.Context, email, rawPassword string) error
	// Redeem validates the submitted code and, on success, atomically marks
	// the account active and deletes the code.
	Redeem(ctx context.Context, email, rawPassword, submittedCode string) error
}

type activationUC struct {
	verifier AccountUseCase
	accounts repository.AccountRepository
	codes    repository.ActivationCodeRepository
	mailer   adapter.Mailer
	tm       repository.TransactionManager
	ttl      time.Duration
	log      *zerolog.Logger
}

func NewActivationUseCase(
	verifier AccountUseCase,
	accounts repository.AccountRepository,
	codes repository.ActivationCodeRepository,
	mailer adapter.Mailer,
	tm repository.TransactionManager,
	codeTTL time.Duration,
	logger *zerolog.Logger,
) *activationUC {
	return &activationUC{
		verifier: verifier,
		accounts: accounts,
		codes:    codes,
		mailer:   mailer,
		tm:       tm,
		ttl:      codeTTL,
		log:      logger,
	}
}

func (u *activationUC) RequestCode(ctx context.Context, email, rawPassword string) error {
	defer logging.TraceDuration(u.log, "ActivationUC.RequestCode")()

	acc, err := u.verifier.Verify(ctx, email, rawPassword)
	if err != nil {
		return err
	}
	if acc.IsActive {
		return domain.ErrAlreadyActive
	}

	raw, err := generateActivationCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	code, err := model.NewActivationCode(acc.ID, raw, u.ttl)
	if err != nil {
		return err
	}

	// Single-statement upsert keyed on the per-account uniqueness constraint;
	// the previous code is superseded atomically.
	if err := u.codes.Replace(ctx, repository.NoTX, code); err != nil {
		u.log.Error().Err(err).Str("account_id", acc.ID).Msg("failed to store activation code")
		return err
	}
	metrics.IncCodeIssued()
	u.log.Info().Str("account_id", acc.ID).Time("expires_at", code.ExpiresAt).Msg("activation code issued")

	// Delivery failure is reported upward but never unwinds the issued code;
	// the caller may simply request again, which replaces it wholesale.
	if err := u.mailer.SendActivationCode(ctx, acc.Email, code.Code, u.ttl); err != nil {
		u.log.Error().Err(err).Str("account_id", acc.ID).Msg("activation code delivery failed")
		if errors.Is(err, domain.ErrDeliveryFailed) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	return nil
}

func (u *activationUC) Redeem(ctx context.Context, email, rawPassword, submittedCode string) error {
	defer logging.TraceDuration(u.log, "ActivationUC.Redeem")()

	acc, err := u.verifier.Verify(ctx, email, rawPassword)
	if err != nil {
		metrics.IncRedemptionFailure("invalid_credentials")
		return err
	}
	if acc.IsActive {
		metrics.IncRedemptionFailure("already_active")
		return domain.ErrAlreadyActive
	}

	// The read of the code, the expiry/equality checks and the
	// activate+consume writes form one atomic unit. FindByAccount locks the
	// row, so a concurrent redeemer serializes behind us and then observes
	// either the active account or the missing code.
	txOpts := pgx.TxOptions{IsoLevel: pgx.Serializable}
	err = u.tm.WithTx(ctx, txOpts, func(ctx context.Context, tx repository.Tx) error {
		cur, err := u.accounts.FindByID(ctx, tx, acc.ID)
		if err != nil {
			return err
		}
		if cur.IsActive {
			return domain.ErrAlreadyActive
		}

		stored, err := u.codes.FindByAccount(ctx, tx, acc.ID)
		if err != nil {
			return err
		}
		if stored.Expired(time.Now()) {
			// Left in place; the next RequestCode overwrites it.
			return domain.ErrCodeExpired
		}
		if !stored.Matches(submittedCode) {
			return domain.ErrCodeMismatch
		}

		if err := u.accounts.Activate(ctx, tx, acc.ID); err != nil {
			return err
		}
		return u.codes.Consume(ctx, tx, acc.ID)
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyActive):
			metrics.IncRedemptionFailure("already_active")
		case errors.Is(err, domain.ErrNoCodeRequested):
			metrics.IncRedemptionFailure("no_code_requested")
		case errors.Is(err, domain.ErrCodeExpired):
			metrics.IncRedemptionFailure("code_expired")
		case errors.Is(err, domain.ErrCodeMismatch):
			metrics.IncRedemptionFailure("code_mismatch")
		}
		return err
	}

	metrics.IncAccountActivated()
	u.log.Info().Str("account_id", acc.ID).Msg("account activated")
	return nil
}
