// In file: internal/ledger/ledger.go

// Package ledger owns the only cross-request mutable state of the gateway: the
// live balance of each bank account. Every Store implementation serializes the
// read-check-mutate sequence of a debit per account, so two concurrent payments
// against the same account can never both spend the same funds.
package ledger

import (
	"context"
	"errors"
	"math"

	"github.com/dileep-u-k/assistant-gateway/internal/fixtures"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be a finite number")
)

// Store is the balance contract used by the banking tools.
type Store interface {
	// Account returns a snapshot of the account, including its current balance.
	Account(ctx context.Context, accountID string) (fixtures.Account, error)

	// Debit subtracts amount from the balance if, and only if, the balance covers it.
	// The returned account carries the new balance. On ErrInsufficientFunds the
	// stored balance is left untouched. NaN and infinite amounts fail with
	// ErrInvalidAmount before the account is read.
	Debit(ctx context.Context, accountID string, amount float64) (fixtures.Account, error)
}

// validAmount reports whether amount can be compared against and subtracted
// from a balance without poisoning it.
func validAmount(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0)
}
