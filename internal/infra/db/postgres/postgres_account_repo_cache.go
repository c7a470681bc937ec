package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"account-activation-service/internal/domain/model"
	"account-activation-service/internal/domain/ports/repository"
	"account-activation-service/internal/infra/metrics"
	red "account-activation-service/internal/infra/redis"
)

var _ repository.AccountRepository = (*accountRepoCacheDecorator)(nil)

// accountRepoCacheDecorator is a read-through cache over AccountRepository.
// Lookups inside a transaction bypass the cache so locking reads stay honest.
type accountRepoCacheDecorator struct {
	inner repository.AccountRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewAccountRepoCacheDecorator(inner repository.AccountRepository, cache red.RedisClient, ttl time.Duration) repository.AccountRepository {
	return &accountRepoCacheDecorator{
		inner: inner,
		cache: cache,
		ttl:   ttl,
	}
}

func idKey(id string) string       { return fmt.Sprintf("account:id:%s", id) }
func emailKey(email string) string { return fmt.Sprintf("account:email:%s", email) }

// Write operations invalidate all possible keys for that account.
func (d *accountRepoCacheDecorator) Create(ctx context.Context, tx repository.Tx, a *model.Account) error {
	_ = d.cache.Del(ctx, idKey(a.ID), emailKey(a.Email))
	return d.inner.Create(ctx, tx, a)
}

func (d *accountRepoCacheDecorator) Activate(ctx context.Context, tx repository.Tx, id string) error {
	// Email key is unknown here; fetch through inner to find it, then drop both.
	if a, err := d.inner.FindByID(ctx, tx, id); err == nil {
		_ = d.cache.Del(ctx, emailKey(a.Email))
	}
	_ = d.cache.Del(ctx, idKey(id))
	return d.inner.Activate(ctx, tx, id)
}

func (d *accountRepoCacheDecorator) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.Account, error) {
	if inTx(tx) {
		return d.inner.FindByEmail(ctx, tx, email)
	}
	key := emailKey(email)
	if val, err := d.cache.Get(ctx, key); err == nil {
		var a model.Account
		if json.Unmarshal([]byte(val), &a) == nil {
			metrics.IncCacheRequest("account", "hit")
			return &a, nil
		}
	}

	metrics.IncCacheRequest("account", "miss")
	a, err := d.inner.FindByEmail(ctx, tx, email)
	if err != nil {
		return nil, err
	}
	d.warm(ctx, a)
	return a, nil
}

func (d *accountRepoCacheDecorator) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Account, error) {
	if inTx(tx) {
		return d.inner.FindByID(ctx, tx, id)
	}
	key := idKey(id)
	if val, err := d.cache.Get(ctx, key); err == nil {
		var a model.Account
		if json.Unmarshal([]byte(val), &a) == nil {
			metrics.IncCacheRequest("account", "hit")
			return &a, nil
		}
	}

	metrics.IncCacheRequest("account", "miss")
	a, err := d.inner.FindByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	d.warm(ctx, a)
	return a, nil
}

// warm sets both keys so a FindByEmail primes FindByID and vice versa.
func (d *accountRepoCacheDecorator) warm(ctx context.Context, a *model.Account) {
	if a == nil {
		return
	}
	bytes, err := json.Marshal(a)
	if err != nil {
		return
	}
	_ = d.cache.Set(ctx, idKey(a.ID), bytes, d.ttl)
	_ = d.cache.Set(ctx, emailKey(a.Email), bytes, d.ttl)
}
