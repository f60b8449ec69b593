// In file: internal/tools/banking.go
package tools

import (
	"context"
	"errors"
	"math"

	"github.com/dileep-u-k/assistant-gateway/internal/fixtures"
	"github.com/dileep-u-k/assistant-gateway/internal/ledger"
)

const (
	// paymentTimestamp is stamped on every mock receipt.
	paymentTimestamp    = "2025-12-07T17:10:00Z"
	defaultHistoryLimit = 10
)

// Balance is the payload of get_balance.
type Balance struct {
	Account fixtures.Account `json:"account"`
}

// PaymentReceipt is the payload of process_payment.
type PaymentReceipt struct {
	TransactionID string  `json:"transaction_id"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	Merchant      string  `json:"merchant"`
	NewBalance    float64 `json:"new_balance"`
	Timestamp     string  `json:"timestamp"`
}

// TransactionHistory is the payload of get_transaction_history.
type TransactionHistory struct {
	AccountID    string                 `json:"account_id"`
	Transactions []fixtures.Transaction `json:"transactions"`
	Count        int                    `json:"count"`
}

var (
	getBalanceTool = ToolDescriptor{
		Name:        "get_balance",
		Description: "Get account balance for a bank account",
		Params: []ParamSpec{
			{Name: "account_id", Type: ParamString, Required: true, Description: "Bank account ID"},
		},
	}
	processPaymentTool = ToolDescriptor{
		Name:        "process_payment",
		Description: "Process a payment from the account",
		Params: []ParamSpec{
			{Name: "account_id", Type: ParamString, Required: true, Description: "Source account ID"},
			{Name: "amount", Type: ParamNumber, Required: true, Description: "Payment amount", Minimum: bound(0.01), Default: 0.0},
			{Name: "merchant", Type: ParamString, Required: true, Description: "Merchant/recipient name"},
		},
	}
	transactionHistoryTool = ToolDescriptor{
		Name:        "get_transaction_history",
		Description: "Get recent transaction history for an account",
		Params: []ParamSpec{
			{Name: "account_id", Type: ParamString, Required: true, Description: "Bank account ID"},
			{Name: "limit", Type: ParamInteger, Description: "Number of transactions to retrieve", Minimum: bound(1), Maximum: bound(50), Default: defaultHistoryLimit},
		},
	}
)

type bankingTools struct {
	catalog *fixtures.Catalog
	store   ledger.Store
	opts    domainOptions
}

// NewBankingRegistry builds the banking domain over store, which owns live
// balances. The transaction log comes from catalog. In real mode every tool
// reports NotImplemented.
func NewBankingRegistry(catalog *fixtures.Catalog, store ledger.Store, mode Mode, opts ...DomainOption) *Registry {
	reg := NewRegistry(DomainBanking, mode)
	if mode == ModeReal {
		stub := notImplemented("Banking")
		reg.mustRegister(getBalanceTool, stub)
		reg.mustRegister(processPaymentTool, stub)
		reg.mustRegister(transactionHistoryTool, stub)
		return reg
	}

	bt := &bankingTools{catalog: catalog, store: store, opts: buildOptions(opts)}
	reg.mustRegister(getBalanceTool, bt.balance)
	reg.mustRegister(processPaymentTool, bt.processPayment)
	reg.mustRegister(transactionHistoryTool, bt.history)
	return reg
}

// account maps the ledger's not-found sentinel to the tool-level error.
func (bt *bankingTools) account(ctx context.Context, accountID string) (fixtures.Account, error) {
	acct, err := bt.store.Account(ctx, accountID)
	if errors.Is(err, ledger.ErrAccountNotFound) {
		return fixtures.Account{}, Errorf(NotFound, "Account %s not found", accountID)
	}
	return acct, err
}

func (bt *bankingTools) balance(ctx context.Context, args Args) (any, error) {
	var in struct {
		AccountID string `mapstructure:"account_id"`
	}
	if err := DecodeArgs(args, &in); err != nil {
		return nil, err
	}

	acct, err := bt.account(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}
	return Balance{Account: acct}, nil
}

func (bt *bankingTools) processPayment(ctx context.Context, args Args) (any, error) {
	var in struct {
		AccountID string  `mapstructure:"account_id"`
		Amount    float64 `mapstructure:"amount"`
		Merchant  string  `mapstructure:"merchant"`
	}
	if err := DecodeArgs(args, &in); err != nil {
		return nil, err
	}
	if math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		return nil, Errorf(HandlerFailure, "Invalid amount: %v", in.Amount)
	}

	acct, err := bt.store.Debit(ctx, in.AccountID, in.Amount)
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound):
		return nil, Errorf(NotFound, "Account %s not found", in.AccountID)
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return nil, Errorf(InsufficientFunds, "Insufficient funds")
	case err != nil:
		return nil, err
	}

	return PaymentReceipt{
		TransactionID: bt.opts.newID("TXN", 100000, 999999),
		Status:        "completed",
		Amount:        in.Amount,
		Merchant:      in.Merchant,
		NewBalance:    acct.Balance,
		Timestamp:     paymentTimestamp,
	}, nil
}

func (bt *bankingTools) history(ctx context.Context, args Args) (any, error) {
	var in struct {
		AccountID string `mapstructure:"account_id"`
		Limit     int    `mapstructure:"limit"`
	}
	if err := DecodeArgs(args, &in); err != nil {
		return nil, err
	}

	if _, err := bt.account(ctx, in.AccountID); err != nil {
		return nil, err
	}

	log := bt.catalog.Transactions
	limit := min(max(in.Limit, 0), len(log))
	txns := make([]fixtures.Transaction, limit)
	copy(txns, log[:limit])
	return TransactionHistory{AccountID: in.AccountID, Transactions: txns, Count: limit}, nil
}
