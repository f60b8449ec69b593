package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileep-u-k/assistant-gateway/internal/fixtures"
	"github.com/dileep-u-k/assistant-gateway/internal/ledger"
)

func fixedRange(n int) DomainOption {
	return WithIntRange(func(lo, hi int) int { return n })
}

// newTestInvoker wires the three mock domains over the embedded catalog.
func newTestInvoker(t *testing.T, opts ...DomainOption) (*Invoker, *ledger.MemoryStore) {
	t.Helper()

	catalog, err := fixtures.Default()
	require.NoError(t, err)
	store := ledger.NewMemoryStore(catalog.Accounts)

	inv, err := NewInvoker(nil,
		NewFoodRegistry(catalog, ModeMock, opts...),
		NewProductRegistry(catalog, ModeMock, opts...),
		NewBankingRegistry(catalog, store, ModeMock, opts...),
	)
	require.NoError(t, err)
	require.NoError(t, inv.Alias("zomato", DomainFood))
	require.NoError(t, inv.Alias("amazon", DomainProduct))
	return inv, store
}

func TestInvoke_UnknownDomain(t *testing.T) {
	inv, _ := newTestInvoker(t)

	res := inv.Invoke(context.Background(), "weather", "forecast", nil)
	assert.False(t, res.OK())
	assert.Equal(t, UnknownDomain, res.Kind)
	assert.Equal(t, "Unknown domain: weather", res.Message)
}

func TestInvoke_UnknownToolRegardlessOfArgs(t *testing.T) {
	inv, _ := newTestInvoker(t)

	for _, domain := range []string{DomainFood, DomainProduct, DomainBanking} {
		res := inv.Invoke(context.Background(), domain, "refund_order", Args{"item_id": "1", "quantity": 2, "account_id": "123456"})
		assert.Equal(t, UnknownTool, res.Kind, domain)
		assert.Equal(t, "Unknown tool: refund_order", res.Message, domain)
		assert.Equal(t, ModeMock, res.Mode, domain)
	}
}

func TestInvoke_Aliases(t *testing.T) {
	inv, _ := newTestInvoker(t)

	res := inv.Invoke(context.Background(), "zomato", "search_food", Args{"query": "pizza"})
	require.True(t, res.OK())
	assert.Len(t, res.Payload.(FoodSearch).Results, 1)

	res = inv.Invoke(context.Background(), "amazon", "get_product_details", Args{"product_id": "B002"})
	require.True(t, res.OK())
	assert.Equal(t, "Echo Dot", res.Payload.(ProductDetails).Product.Name)
}

func TestInvoke_HandlerPanicBecomesHandlerFailure(t *testing.T) {
	reg := NewRegistry("test", ModeMock)
	require.NoError(t, reg.Register(ToolDescriptor{Name: "boom"}, func(context.Context, Args) (any, error) {
		panic("kaboom")
	}))
	inv, err := NewInvoker(nil, reg)
	require.NoError(t, err)

	res := inv.Invoke(context.Background(), "test", "boom", nil)
	assert.Equal(t, HandlerFailure, res.Kind)
	assert.Equal(t, "kaboom", res.Message)
}

func TestInvoke_PlainErrorBecomesHandlerFailure(t *testing.T) {
	reg := NewRegistry("test", ModeMock)
	require.NoError(t, reg.Register(ToolDescriptor{Name: "fail"}, func(context.Context, Args) (any, error) {
		return nil, errors.New("connection reset")
	}))
	inv, err := NewInvoker(nil, reg)
	require.NoError(t, err)

	res := inv.Invoke(context.Background(), "test", "fail", nil)
	assert.Equal(t, HandlerFailure, res.Kind)
	assert.Equal(t, "connection reset", res.Message)
}

func TestInvoke_CancelledContextSkipsHandler(t *testing.T) {
	called := false
	reg := NewRegistry("test", ModeMock)
	require.NoError(t, reg.Register(ToolDescriptor{Name: "noop"}, func(context.Context, Args) (any, error) {
		called = true
		return struct{}{}, nil
	}))
	inv, err := NewInvoker(nil, reg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := inv.Invoke(ctx, "test", "noop", nil)
	assert.Equal(t, HandlerFailure, res.Kind)
	assert.False(t, called)
}

func TestInvoke_DefaultsDoNotMutateCallerArgs(t *testing.T) {
	inv, _ := newTestInvoker(t, fixedRange(12345))
	args := Args{"item_id": "1"}

	res := inv.Invoke(context.Background(), DomainFood, "place_order", args)
	require.True(t, res.OK())
	assert.Equal(t, 1, res.Payload.(FoodOrder).Quantity)
	assert.NotContains(t, args, "quantity")
}

func TestInvoke_InvalidArgumentType(t *testing.T) {
	inv, _ := newTestInvoker(t)

	res := inv.Invoke(context.Background(), DomainFood, "place_order", Args{"item_id": "1", "quantity": "lots"})
	assert.Equal(t, HandlerFailure, res.Kind)
	assert.Contains(t, res.Message, "invalid arguments")
}

func TestNewInvoker_DuplicateDomain(t *testing.T) {
	_, err := NewInvoker(nil, NewRegistry("x", ModeMock), NewRegistry("x", ModeMock))
	assert.Error(t, err)
}

func TestAlias_Validation(t *testing.T) {
	inv, _ := newTestInvoker(t)
	assert.Error(t, inv.Alias("bank", "nope"))
	assert.Error(t, inv.Alias(DomainFood, DomainProduct))
}

func TestRegistry_RegisterValidation(t *testing.T) {
	noop := func(context.Context, Args) (any, error) { return nil, nil }
	reg := NewRegistry("x", ModeMock)

	assert.Error(t, reg.Register(ToolDescriptor{}, noop))
	assert.Error(t, reg.Register(ToolDescriptor{Name: "a"}, nil))
	assert.Error(t, reg.Register(ToolDescriptor{Name: "a", Params: []ParamSpec{{Name: "p"}, {Name: "p"}}}, noop))
	require.NoError(t, reg.Register(ToolDescriptor{Name: "a"}, noop))
	assert.Error(t, reg.Register(ToolDescriptor{Name: "a"}, noop))
	assert.Equal(t, 1, reg.ToolCount())
}

func TestCatalog_RegistrationOrder(t *testing.T) {
	inv, _ := newTestInvoker(t)

	assert.Equal(t, []string{DomainBanking, DomainFood, DomainProduct}, inv.Domains())

	names := func(defs []ToolDescriptor) []string {
		out := make([]string, 0, len(defs))
		for _, d := range defs {
			out = append(out, d.Name)
		}
		return out
	}
	cat := inv.Catalog()
	assert.Equal(t, []string{"search_food", "place_order", "get_restaurant_info"}, names(cat[DomainFood]))
	assert.Equal(t, []string{"search_product", "place_order", "get_product_details"}, names(cat[DomainProduct]))
	assert.Equal(t, []string{"get_balance", "process_payment", "get_transaction_history"}, names(cat[DomainBanking]))
}

func TestRealMode_NotImplemented(t *testing.T) {
	catalog, err := fixtures.Default()
	require.NoError(t, err)
	inv, err := NewInvoker(nil,
		NewFoodRegistry(catalog, ModeReal),
		NewProductRegistry(catalog, ModeReal),
		NewBankingRegistry(catalog, ledger.NewMemoryStore(catalog.Accounts), ModeReal),
	)
	require.NoError(t, err)

	cases := []struct {
		domain, tool, msg string
	}{
		{DomainFood, "search_food", "Real Zomato API not yet implemented"},
		{DomainProduct, "place_order", "Real Amazon API not yet implemented"},
		{DomainBanking, "get_balance", "Real Banking API not yet implemented"},
	}
	for _, tc := range cases {
		res := inv.Invoke(context.Background(), tc.domain, tc.tool, Args{"query": "pizza"})
		assert.Equal(t, NotImplemented, res.Kind)
		assert.Equal(t, tc.msg, res.Message)
		assert.Equal(t, ModeReal, res.Mode)
	}

	res := inv.Invoke(context.Background(), DomainFood, "nope", nil)
	assert.Equal(t, UnknownTool, res.Kind)
}
