package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"account-activation-service/internal/domain"
	"account-activation-service/internal/domain/model"
	"account-activation-service/internal/domain/ports/repository"
)

// uniqueViolation is the Postgres SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

var _ repository.AccountRepository = (*AccountRepo)(nil)

type AccountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

func (r *AccountRepo) Create(ctx context.Context, tx repository.Tx, a *model.Account) error {
	const q = `
INSERT INTO accounts (id, email, password_hash, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6);
`
	_, err := execSQL(ctx, r.pool, tx, q, a.ID, a.Email, a.PasswordHash, a.IsActive, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("%w: insert account: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func (r *AccountRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.Account, error) {
	const q = `
SELECT id, email, password_hash, is_active, created_at, updated_at
  FROM accounts WHERE email = LOWER($1);
`
	return r.scanOne(ctx, tx, q, email)
}

func (r *AccountRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Account, error) {
	const q = `
SELECT id, email, password_hash, is_active, created_at, updated_at
  FROM accounts WHERE id = $1;
`
	return r.scanOne(ctx, tx, q, id)
}

func (r *AccountRepo) Activate(ctx context.Context, tx repository.Tx, id string) error {
	const q = `
UPDATE accounts SET is_active = TRUE, updated_at = NOW()
 WHERE id = $1 AND is_active = FALSE;
`
	if _, err := execSQL(ctx, r.pool, tx, q, id); err != nil {
		return fmt.Errorf("%w: activate account: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func (r *AccountRepo) scanOne(ctx context.Context, tx repository.Tx, q string, arg interface{}) (*model.Account, error) {
	row, err := pickRow(ctx, r.pool, tx, q, arg)
	if err != nil {
		return nil, err
	}
	var a model.Account
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: scan account: %v", domain.ErrStorageUnavailable, err)
	}
	return &a, nil
}
