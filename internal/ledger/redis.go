// In file: internal/ledger/redis.go
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dileep-u-k/assistant-gateway/internal/fixtures"
	"github.com/dileep-u-k/assistant-gateway/internal/version"
)

const (
	defaultKeyPrefix    = "ledger"
	defaultDebitRetries = 16
)

// RedisStore keeps one hash per account so several gateway replicas share
// balances. Debits run under WATCH on the account key; a concurrent writer
// aborts the MULTI block and the debit is retried against the fresh balance.
type RedisStore struct {
	rdb        *redis.Client
	keyPrefix  string
	maxRetries int
	logger     *zap.Logger
}

// Statically verify that RedisStore implements the Store interface.
var _ Store = (*RedisStore)(nil)

// RedisOption customizes a RedisStore.
type RedisOption func(*RedisStore)

func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.keyPrefix = prefix
		}
	}
}

func WithMaxRetries(n int) RedisOption {
	return func(s *RedisStore) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

func WithLogger(logger *zap.Logger) RedisOption {
	return func(s *RedisStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewRedisStore(rdb *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		rdb:        rdb,
		keyPrefix:  defaultKeyPrefix,
		maxRetries: defaultDebitRetries,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) accountKey(accountID string) string {
	return version.GenerateVersionedKey(s.keyPrefix, "account", accountID)
}

// Seed writes the opening balances of accounts. Existing accounts are left
// alone unless reset is set. It returns the number of accounts written.
func (s *RedisStore) Seed(ctx context.Context, accounts []fixtures.Account, reset bool) (int, error) {
	written := 0
	for _, a := range accounts {
		key := s.accountKey(a.AccountID)
		if !reset {
			n, err := s.rdb.Exists(ctx, key).Result()
			if err != nil {
				return written, fmt.Errorf("check account %s: %w", a.AccountID, err)
			}
			if n > 0 {
				continue
			}
		}
		if err := s.rdb.HSet(ctx, key, accountFields(a)).Err(); err != nil {
			return written, fmt.Errorf("seed account %s: %w", a.AccountID, err)
		}
		written++
	}
	return written, nil
}

func (s *RedisStore) Account(ctx context.Context, accountID string) (fixtures.Account, error) {
	return readAccount(ctx, s.rdb, s.accountKey(accountID))
}

func (s *RedisStore) Debit(ctx context.Context, accountID string, amount float64) (fixtures.Account, error) {
	if !validAmount(amount) {
		return fixtures.Account{}, ErrInvalidAmount
	}
	key := s.accountKey(accountID)

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		var updated fixtures.Account
		err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
			acct, err := readAccount(ctx, tx, key)
			if err != nil {
				return err
			}
			if acct.Balance < amount {
				updated = acct
				return ErrInsufficientFunds
			}
			acct.Balance -= amount
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.HSet(ctx, key, "balance", acct.Balance)
				return nil
			})
			updated = acct
			return err
		}, key)

		switch {
		case err == nil:
			return updated, nil
		case errors.Is(err, redis.TxFailedErr):
			s.logger.Debug("ledger debit lost a race, retrying",
				zap.String("account_id", accountID), zap.Int("attempt", attempt+1))
			continue
		default:
			return updated, err
		}
	}
	return fixtures.Account{}, fmt.Errorf("debit account %s: gave up after %d conflicting writers", accountID, s.maxRetries)
}

func readAccount(ctx context.Context, c redis.Cmdable, key string) (fixtures.Account, error) {
	cmd := c.HGetAll(ctx, key)
	vals, err := cmd.Result()
	if err != nil {
		return fixtures.Account{}, fmt.Errorf("read %s: %w", key, err)
	}
	if len(vals) == 0 {
		return fixtures.Account{}, ErrAccountNotFound
	}
	var acct fixtures.Account
	if err := cmd.Scan(&acct); err != nil {
		return fixtures.Account{}, fmt.Errorf("decode %s: %w", key, err)
	}
	return acct, nil
}

func accountFields(a fixtures.Account) map[string]any {
	return map[string]any{
		"account_id":   a.AccountID,
		"account_type": a.AccountType,
		"balance":      a.Balance,
		"currency":     a.Currency,
		"status":       a.Status,
	}
}
