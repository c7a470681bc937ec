package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"account-activation-service/internal/domain"
	"account-activation-service/internal/domain/model"
	"account-activation-service/internal/domain/ports/repository"
)

// Ensure implementation satisfies the interface.
var _ repository.ActivationCodeRepository = (*ActivationCodeRepo)(nil)

type ActivationCodeRepo struct {
	pool *pgxpool.Pool
}

func NewActivationCodeRepo(pool *pgxpool.Pool) *ActivationCodeRepo {
	return &ActivationCodeRepo{pool: pool}
}

// Replace installs the code for its account in a single statement. The upsert
// is keyed on the UNIQUE(account_id) constraint, so a prior code is superseded
// atomically: a concurrent reader sees the old row or the new one, never two
// and never none.
func (r *ActivationCodeRepo) Replace(ctx context.Context, tx repository.Tx, code *model.ActivationCode) error {
	const q = `
INSERT INTO activation_codes (id, account_id, code, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (account_id) DO UPDATE SET
  id         = EXCLUDED.id,
  code       = EXCLUDED.code,
  created_at = EXCLUDED.created_at,
  expires_at = EXCLUDED.expires_at;
`
	_, err := execSQL(ctx, r.pool, tx, q, code.ID, code.AccountID, code.Code, code.CreatedAt, code.ExpiresAt)
	if err != nil {
		return fmt.Errorf("%w: replace activation code: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// FindByAccount returns the stored code, expired or not; expiry is the
// caller's read-time concern. Inside a transaction the row is locked so a
// concurrent redeemer serializes behind us.
func (r *ActivationCodeRepo) FindByAccount(ctx context.Context, tx repository.Tx, accountID string) (*model.ActivationCode, error) {
	q := `
SELECT id, account_id, code, created_at, expires_at
  FROM activation_codes
 WHERE account_id = $1`
	if inTx(tx) {
		q += " FOR UPDATE"
	}
	q += ";"

	row, err := pickRow(ctx, r.pool, tx, q, accountID)
	if err != nil {
		return nil, err
	}
	var ac model.ActivationCode
	if err := row.Scan(&ac.ID, &ac.AccountID, &ac.Code, &ac.CreatedAt, &ac.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoCodeRequested
		}
		return nil, fmt.Errorf("%w: scan activation code: %v", domain.ErrStorageUnavailable, err)
	}
	return &ac, nil
}

func (r *ActivationCodeRepo) Consume(ctx context.Context, tx repository.Tx, accountID string) error {
	const q = `DELETE FROM activation_codes WHERE account_id = $1;`
	tag, err := execSQL(ctx, r.pool, tx, q, accountID)
	if err != nil {
		return fmt.Errorf("%w: consume activation code: %v", domain.ErrStorageUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoCodeRequested
	}
	return nil
}

func (r *ActivationCodeRepo) DeleteExpired(ctx context.Context, tx repository.Tx, cutoff time.Time) (int64, error) {
	const q = `DELETE FROM activation_codes WHERE expires_at <= $1;`
	tag, err := execSQL(ctx, r.pool, tx, q, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w: delete expired codes: %v", domain.ErrStorageUnavailable, err)
	}
	return tag.RowsAffected(), nil
}
