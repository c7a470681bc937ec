//go:build !integration

package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"account-activation-service/internal/domain"
	"account-activation-service/internal/domain/model"
	"account-activation-service/internal/domain/ports/adapter"
	"account-activation-service/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// =============================
// Repositories
// =============================

// MockAccountRepo is a small in-memory implementation used by unit tests.
// Per-method Func fields allow overriding behavior for failure cases.
type MockAccountRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Account // by ID

	CreateFunc      func(ctx context.Context, tx repository.Tx, a *model.Account) error
	FindByEmailFunc func(ctx context.Context, tx repository.Tx, email string) (*model.Account, error)
	FindByIDFunc    func(ctx context.Context, tx repository.Tx, id string) (*model.Account, error)
	ActivateFunc    func(ctx context.Context, tx repository.Tx, id string) error
}

var _ repository.AccountRepository = (*MockAccountRepo)(nil)

func NewMockAccountRepo() *MockAccountRepo {
	return &MockAccountRepo{store: make(map[string]*model.Account)}
}

func (m *MockAccountRepo) Create(ctx context.Context, tx repository.Tx, a *model.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, a)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.store {
		if existing.Email == a.Email {
			return domain.ErrEmailTaken
		}
	}
	cp := *a
	m.store[a.ID] = &cp
	return nil
}

func (m *MockAccountRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.Account, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, tx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.store {
		if a.Email == model.NormalizeEmail(email) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockAccountRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Account, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, tx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *MockAccountRepo) Activate(ctx context.Context, tx repository.Tx, id string) error {
	if m.ActivateFunc != nil {
		return m.ActivateFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.store[id]
	if !ok {
		return nil
	}
	if !a.IsActive {
		a.IsActive = true
		a.UpdatedAt = time.Now()
	}
	return nil
}

// MockCodeRepo keeps at most one code per account, like the real table.
type MockCodeRepo struct {
	mu    sync.RWMutex
	store map[string]*model.ActivationCode // by AccountID

	ReplaceFunc       func(ctx context.Context, tx repository.Tx, code *model.ActivationCode) error
	FindByAccountFunc func(ctx context.Context, tx repository.Tx, accountID string) (*model.ActivationCode, error)
	ConsumeFunc       func(ctx context.Context, tx repository.Tx, accountID string) error
}

var _ repository.ActivationCodeRepository = (*MockCodeRepo)(nil)

func NewMockCodeRepo() *MockCodeRepo {
	return &MockCodeRepo{store: make(map[string]*model.ActivationCode)}
}

func (m *MockCodeRepo) Replace(ctx context.Context, tx repository.Tx, code *model.ActivationCode) error {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, tx, code)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *code
	m.store[code.AccountID] = &cp
	return nil
}

func (m *MockCodeRepo) FindByAccount(ctx context.Context, tx repository.Tx, accountID string) (*model.ActivationCode, error) {
	if m.FindByAccountFunc != nil {
		return m.FindByAccountFunc(ctx, tx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.store[accountID]
	if !ok {
		return nil, domain.ErrNoCodeRequested
	}
	cp := *c
	return &cp, nil
}

func (m *MockCodeRepo) Consume(ctx context.Context, tx repository.Tx, accountID string) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, tx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[accountID]; !ok {
		return domain.ErrNoCodeRequested
	}
	delete(m.store, accountID)
	return nil
}

func (m *MockCodeRepo) DeleteExpired(ctx context.Context, tx repository.Tx, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, c := range m.store {
		if !c.ExpiresAt.After(cutoff) {
			delete(m.store, id)
			n++
		}
	}
	return n, nil
}

// Stored returns the live code for inspection, or nil.
func (m *MockCodeRepo) Stored(accountID string) *model.ActivationCode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.store[accountID]
	if !ok {
		return nil
	}
	cp := *c
	return &cp
}

// ExpireNow rewinds the stored code's expiry so it is already past.
func (m *MockCodeRepo) ExpireNow(accountID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.store[accountID]; ok {
		c.ExpiresAt = time.Now().Add(-time.Second)
	}
}

// MockTxManager serializes transactional sections with a mutex, emulating the
// Serializable isolation the real TxManager requests.
type MockTxManager struct {
	mu sync.Mutex
}

var _ repository.TransactionManager = (*MockTxManager)(nil)

func NewMockTxManager() *MockTxManager { return &MockTxManager{} }

func (m *MockTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx, repository.NoTX)
}

// =============================
// Adapters
// =============================

// MockMailer captures outbound activation-code emails.
type MockMailer struct {
	mu   sync.Mutex
	Sent []SentMail

	SendFunc func(ctx context.Context, toEmail, code string, ttl time.Duration) error
}

type SentMail struct {
	To   string
	Code string
	TTL  time.Duration
}

var _ adapter.Mailer = (*MockMailer)(nil)

func (m *MockMailer) SendActivationCode(ctx context.Context, toEmail, code string, ttl time.Duration) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, toEmail, code, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentMail{To: toEmail, Code: code, TTL: ttl})
	return nil
}

func (m *MockMailer) LastSent() (SentMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return SentMail{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}

// plainHasher is a deterministic stand-in for bcrypt in unit tests.
type plainHasher struct{}

var _ adapter.PasswordHasher = (*plainHasher)(nil)

func (plainHasher) Hash(raw string) (string, error) {
	if raw == "" {
		return "", domain.ErrInvalidArgument
	}
	return fmt.Sprintf("hashed:%s", raw), nil
}

func (plainHasher) Compare(raw, hash string) bool {
	return fmt.Sprintf("hashed:%s", raw) == hash
}
