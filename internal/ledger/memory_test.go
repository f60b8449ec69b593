package ledger

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileep-u-k/assistant-gateway/internal/fixtures"
)

func testAccounts() []fixtures.Account {
	return []fixtures.Account{
		{AccountID: "123456", AccountType: "Checking", Balance: 5000, Currency: "USD", Status: "active"},
		{AccountID: "789012", AccountType: "Savings", Balance: 15000, Currency: "USD", Status: "active"},
	}
}

func TestMemoryStore_Account(t *testing.T) {
	s := NewMemoryStore(testAccounts())

	acct, err := s.Account(context.Background(), "123456")
	require.NoError(t, err)
	assert.Equal(t, "Checking", acct.AccountType)
	assert.Equal(t, 5000.0, acct.Balance)

	_, err = s.Account(context.Background(), "999999")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestMemoryStore_SequentialDebits(t *testing.T) {
	s := NewMemoryStore(testAccounts())
	ctx := context.Background()

	acct, err := s.Debit(ctx, "123456", 100)
	require.NoError(t, err)
	assert.Equal(t, 4900.0, acct.Balance)

	acct, err = s.Debit(ctx, "123456", 100)
	require.NoError(t, err)
	assert.Equal(t, 4800.0, acct.Balance)

	acct, err = s.Account(ctx, "123456")
	require.NoError(t, err)
	assert.Equal(t, 4800.0, acct.Balance)
}

func TestMemoryStore_InsufficientFundsLeavesBalance(t *testing.T) {
	s := NewMemoryStore(testAccounts())
	ctx := context.Background()

	acct, err := s.Debit(ctx, "123456", 10000)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 5000.0, acct.Balance)

	acct, err = s.Account(ctx, "123456")
	require.NoError(t, err)
	assert.Equal(t, 5000.0, acct.Balance)
}

func TestMemoryStore_ExactBalanceIsAllowed(t *testing.T) {
	s := NewMemoryStore(testAccounts())

	acct, err := s.Debit(context.Background(), "123456", 5000)
	require.NoError(t, err)
	assert.Zero(t, acct.Balance)
}

func TestMemoryStore_NonFiniteAmountRejected(t *testing.T) {
	s := NewMemoryStore(testAccounts())
	ctx := context.Background()

	for _, amount := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := s.Debit(ctx, "123456", amount)
		assert.ErrorIs(t, err, ErrInvalidAmount, amount)
	}

	acct, err := s.Account(ctx, "123456")
	require.NoError(t, err)
	assert.Equal(t, 5000.0, acct.Balance)

	_, err = s.Debit(ctx, "123456", 5000.01)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestMemoryStore_DebitUnknownAccount(t *testing.T) {
	s := NewMemoryStore(testAccounts())

	_, err := s.Debit(context.Background(), "000000", 1)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	s := NewMemoryStore(testAccounts())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Debit(ctx, "123456", 1)
	assert.ErrorIs(t, err, context.Canceled)

	acct, err := s.Account(context.Background(), "123456")
	require.NoError(t, err)
	assert.Equal(t, 5000.0, acct.Balance)
}

func TestMemoryStore_ConcurrentDebitsNeverOverspend(t *testing.T) {
	s := NewMemoryStore(testAccounts())
	ctx := context.Background()

	// 80 payments of 100 against a 5000 balance: exactly 50 can succeed.
	const workers = 80
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Debit(ctx, "123456", 100)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if assert.ErrorIs(t, err, ErrInsufficientFunds) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, succeeded)
	assert.Equal(t, 30, rejected)

	acct, err := s.Account(ctx, "123456")
	require.NoError(t, err)
	assert.Zero(t, acct.Balance)

	other, err := s.Account(ctx, "789012")
	require.NoError(t, err)
	assert.Equal(t, 15000.0, other.Balance, "debits must not leak across accounts")
}
