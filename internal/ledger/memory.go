// In file: internal/ledger/memory.go
package ledger

import (
	"context"
	"sync"

	"github.com/dileep-u-k/assistant-gateway/internal/fixtures"
)

type accountEntry struct {
	mu      sync.Mutex
	account fixtures.Account
}

// MemoryStore keeps balances in process memory. The set of accounts is fixed at
// construction, so the map itself is read-only and only each entry is locked.
type MemoryStore struct {
	accounts map[string]*accountEntry
}

// Statically verify that MemoryStore implements the Store interface.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore seeds a store with the opening balances of accounts.
func NewMemoryStore(accounts []fixtures.Account) *MemoryStore {
	s := &MemoryStore{accounts: make(map[string]*accountEntry, len(accounts))}
	for _, a := range accounts {
		s.accounts[a.AccountID] = &accountEntry{account: a}
	}
	return s
}

func (s *MemoryStore) Account(ctx context.Context, accountID string) (fixtures.Account, error) {
	if err := ctx.Err(); err != nil {
		return fixtures.Account{}, err
	}
	entry, ok := s.accounts[accountID]
	if !ok {
		return fixtures.Account{}, ErrAccountNotFound
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.account, nil
}

func (s *MemoryStore) Debit(ctx context.Context, accountID string, amount float64) (fixtures.Account, error) {
	if err := ctx.Err(); err != nil {
		return fixtures.Account{}, err
	}
	if !validAmount(amount) {
		return fixtures.Account{}, ErrInvalidAmount
	}
	entry, ok := s.accounts[accountID]
	if !ok {
		return fixtures.Account{}, ErrAccountNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.account.Balance < amount {
		return entry.account, ErrInsufficientFunds
	}
	entry.account.Balance -= amount
	return entry.account, nil
}
