package tools

import (
	"context"
	"encoding/json"
	"math"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFood(t *testing.T) {
	inv, _ := newTestInvoker(t)
	ctx := context.Background()

	res := inv.Invoke(ctx, DomainFood, "search_food", Args{"query": "BIRYANI"})
	require.True(t, res.OK())
	found := res.Payload.(FoodSearch)
	require.Equal(t, 1, found.Count)
	assert.Equal(t, "2", found.Results[0].ID)

	// Restaurant names match too.
	res = inv.Invoke(ctx, DomainFood, "search_food", Args{"query": "olive"})
	require.True(t, res.OK())
	assert.Equal(t, "Pasta Alfredo", res.Payload.(FoodSearch).Results[0].Name)
}

func TestSearchFood_FallsBackToWholeCatalog(t *testing.T) {
	inv, _ := newTestInvoker(t)

	res := inv.Invoke(context.Background(), DomainFood, "search_food", Args{"query": "nonexistent-xyz"})
	require.True(t, res.OK())
	found := res.Payload.(FoodSearch)
	assert.Equal(t, 4, found.Count)
	assert.Len(t, found.Results, 4)
	assert.Equal(t, "1", found.Results[0].ID)
}

func TestPlaceFoodOrder(t *testing.T) {
	inv, _ := newTestInvoker(t, fixedRange(42424))

	res := inv.Invoke(context.Background(), DomainFood, "place_order", Args{"item_id": "2", "quantity": 3})
	require.True(t, res.OK())
	order := res.Payload.(FoodOrder)
	assert.Equal(t, FoodOrder{
		OrderID:           "ZOMATO-42424",
		Status:            "confirmed",
		Item:              "Chicken Biryani",
		Restaurant:        "Paradise",
		Quantity:          3,
		TotalPrice:        36,
		EstimatedDelivery: "30-40 mins",
	}, order)
}

func TestPlaceFoodOrder_WeaklyTypedArgs(t *testing.T) {
	inv, _ := newTestInvoker(t)

	// JSON bodies deliver numbers as float64; query strings deliver strings.
	res := inv.Invoke(context.Background(), DomainFood, "place_order", Args{"itemId": 1.0, "quantity": "2"})
	require.True(t, res.OK(), res.Message)
	order := res.Payload.(FoodOrder)
	assert.Equal(t, "Cheese Pizza", order.Item)
	assert.Equal(t, 30.0, order.TotalPrice)
}

func TestPlaceFoodOrder_IDFormat(t *testing.T) {
	inv, _ := newTestInvoker(t)
	re := regexp.MustCompile(`^ZOMATO-[1-9]\d{4}$`)

	for i := 0; i < 20; i++ {
		res := inv.Invoke(context.Background(), DomainFood, "place_order", Args{"item_id": "1"})
		require.True(t, res.OK())
		assert.Regexp(t, re, res.Payload.(FoodOrder).OrderID)
	}
}

func TestPlaceFoodOrder_NotFound(t *testing.T) {
	inv, _ := newTestInvoker(t)

	res := inv.Invoke(context.Background(), DomainFood, "place_order", Args{"item_id": "99", "quantity": 1})
	assert.Equal(t, NotFound, res.Kind)
	assert.Equal(t, "Item with ID 99 not found", res.Message)
}

func TestRestaurantInfo(t *testing.T) {
	inv, _ := newTestInvoker(t)

	res := inv.Invoke(context.Background(), DomainFood, "get_restaurant_info", Args{"restaurant_name": "MCDONALD'S"})
	require.True(t, res.OK())
	assert.Equal(t, "Fast Food, Burgers", res.Payload.(RestaurantInfo).Restaurant.Cuisine)

	res = inv.Invoke(context.Background(), DomainFood, "get_restaurant_info", Args{"restaurant_name": "Olive Garden"})
	assert.Equal(t, NotFound, res.Kind)
	assert.Equal(t, "Restaurant 'Olive Garden' not found", res.Message)
}

func TestSearchProduct(t *testing.T) {
	inv, _ := newTestInvoker(t)
	ctx := context.Background()

	res := inv.Invoke(ctx, DomainProduct, "search_product", Args{"query": "electronics"})
	require.True(t, res.OK())
	found := res.Payload.(ProductSearch)
	assert.Equal(t, 2, found.Count)
	assert.Equal(t, "B001", found.Results[0].ID)
	assert.Equal(t, "B003", found.Results[1].ID)

	res = inv.Invoke(ctx, DomainProduct, "search_product", Args{"query": "toaster"})
	require.True(t, res.OK())
	assert.Equal(t, 4, res.Payload.(ProductSearch).Count)
}

func TestPlaceProductOrder(t *testing.T) {
	inv, _ := newTestInvoker(t, fixedRange(100001))

	res := inv.Invoke(context.Background(), DomainProduct, "place_order", Args{"item_id": "B004", "quantity": 2})
	require.True(t, res.OK())
	order := res.Payload.(ProductOrder)
	assert.Equal(t, "AMZ-100001", order.OrderID)
	assert.Equal(t, "processing", order.Status)
	assert.Equal(t, "AmazonBasics USB Cable", order.Product)
	assert.InDelta(t, 15.98, order.TotalPrice, 1e-9)
	assert.Equal(t, "2-3 business days", order.EstimatedDelivery)
}

func TestPlaceProductOrder_Failures(t *testing.T) {
	inv, _ := newTestInvoker(t)

	res := inv.Invoke(context.Background(), DomainProduct, "place_order", Args{"item_id": "B999"})
	assert.Equal(t, NotFound, res.Kind)
	assert.Equal(t, "Product B999 not found", res.Message)

	// Out-of-stock needs a catalog with a sold-out product.
	catalog := mustCatalogWithSoldOut(t)
	reg := NewProductRegistry(catalog, ModeMock)
	inv2, err := NewInvoker(nil, reg)
	require.NoError(t, err)
	res = inv2.Invoke(context.Background(), DomainProduct, "place_order", Args{"item_id": "B002"})
	assert.Equal(t, OutOfStock, res.Kind)
	assert.Equal(t, "Product out of stock", res.Message)
}

func TestProductDetails(t *testing.T) {
	inv, _ := newTestInvoker(t)

	res := inv.Invoke(context.Background(), DomainProduct, "get_product_details", Args{"product_id": "B003"})
	require.True(t, res.OK())
	assert.Equal(t, "Fire TV Stick", res.Payload.(ProductDetails).Product.Name)

	res = inv.Invoke(context.Background(), DomainProduct, "get_product_details", Args{"product_id": "X"})
	assert.Equal(t, "Product X not found", res.Message)
}

func TestGetBalance(t *testing.T) {
	inv, _ := newTestInvoker(t)

	res := inv.Invoke(context.Background(), DomainBanking, "get_balance", Args{"account_id": "789012"})
	require.True(t, res.OK())
	acct := res.Payload.(Balance).Account
	assert.Equal(t, "Savings", acct.AccountType)
	assert.Equal(t, 15000.0, acct.Balance)
	assert.Equal(t, "USD", acct.Currency)

	res = inv.Invoke(context.Background(), DomainBanking, "get_balance", Args{"account_id": "000000"})
	assert.Equal(t, NotFound, res.Kind)
	assert.Equal(t, "Account 000000 not found", res.Message)
}

func TestProcessPayment_SequentialDebits(t *testing.T) {
	inv, _ := newTestInvoker(t, fixedRange(555555))
	ctx := context.Background()

	res := inv.Invoke(ctx, DomainBanking, "process_payment", Args{"account_id": "123456", "amount": 100.0, "merchant": "Cafe"})
	require.True(t, res.OK())
	receipt := res.Payload.(PaymentReceipt)
	assert.Equal(t, PaymentReceipt{
		TransactionID: "TXN-555555",
		Status:        "completed",
		Amount:        100,
		Merchant:      "Cafe",
		NewBalance:    4900,
		Timestamp:     "2025-12-07T17:10:00Z",
	}, receipt)

	res = inv.Invoke(ctx, DomainBanking, "process_payment", Args{"account_id": "123456", "amount": 250.5, "merchant": "Cafe"})
	require.True(t, res.OK())
	assert.InDelta(t, 4649.5, res.Payload.(PaymentReceipt).NewBalance, 1e-9)

	res = inv.Invoke(ctx, DomainBanking, "get_balance", Args{"account_id": "123456"})
	require.True(t, res.OK())
	assert.InDelta(t, 4649.5, res.Payload.(Balance).Account.Balance, 1e-9)
}

func TestProcessPayment_InsufficientFundsLeavesBalance(t *testing.T) {
	inv, store := newTestInvoker(t)
	ctx := context.Background()

	res := inv.Invoke(ctx, DomainBanking, "process_payment", Args{"account_id": "123456", "amount": 5000.01, "merchant": "Car dealer"})
	assert.Equal(t, InsufficientFunds, res.Kind)
	assert.Equal(t, "Insufficient funds", res.Message)

	acct, err := store.Account(ctx, "123456")
	require.NoError(t, err)
	assert.Equal(t, 5000.0, acct.Balance)
}

func TestProcessPayment_NonFiniteAmountLeavesBalance(t *testing.T) {
	cases := []struct {
		name    string
		amount  any
		message string
	}{
		{"nan string", "NaN", "Invalid amount: NaN"},
		{"inf string", "Inf", "Invalid amount: +Inf"},
		{"negative inf string", "-Inf", "Invalid amount: -Inf"},
		{"nan float", math.NaN(), "Invalid amount: NaN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv, store := newTestInvoker(t)
			ctx := context.Background()

			res := inv.Invoke(ctx, DomainBanking, "process_payment", Args{"account_id": "123456", "amount": tc.amount, "merchant": "Cafe"})
			assert.False(t, res.OK())
			assert.Equal(t, HandlerFailure, res.Kind)
			assert.Equal(t, tc.message, res.Message)

			acct, err := store.Account(ctx, "123456")
			require.NoError(t, err)
			assert.Equal(t, 5000.0, acct.Balance)

			// The account still refuses payments it cannot cover.
			res = inv.Invoke(ctx, DomainBanking, "process_payment", Args{"account_id": "123456", "amount": 1e12, "merchant": "Cafe"})
			assert.Equal(t, InsufficientFunds, res.Kind)

			balance := inv.Invoke(ctx, DomainBanking, "get_balance", Args{"account_id": "123456"})
			_, err = json.Marshal(balance)
			assert.NoError(t, err)
		})
	}
}

func TestProcessPayment_UnknownAccount(t *testing.T) {
	inv, _ := newTestInvoker(t)

	res := inv.Invoke(context.Background(), DomainBanking, "process_payment", Args{"account_id": "1", "amount": 1})
	assert.Equal(t, NotFound, res.Kind)
	assert.Equal(t, "Account 1 not found", res.Message)
}

func TestProcessPayment_ConcurrentNoDoubleSpend(t *testing.T) {
	inv, store := newTestInvoker(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]Result, 30)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = inv.Invoke(ctx, DomainBanking, "process_payment", Args{"account_id": "123456", "amount": 400, "merchant": "m"})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, r := range results {
		if r.OK() {
			ok++
		} else {
			assert.Equal(t, InsufficientFunds, r.Kind)
		}
	}
	assert.Equal(t, 12, ok)

	acct, err := store.Account(ctx, "123456")
	require.NoError(t, err)
	assert.InDelta(t, 200.0, acct.Balance, 1e-9)
}

func TestTransactionHistory(t *testing.T) {
	inv, _ := newTestInvoker(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		args  Args
		count int
	}{
		{"default limit caps at log size", Args{"account_id": "123456"}, 4},
		{"explicit limit", Args{"account_id": "123456", "limit": 2}, 2},
		{"limit beyond log", Args{"account_id": "789012", "limit": 50}, 4},
		{"zero limit", Args{"account_id": "123456", "limit": 0}, 0},
		{"negative limit", Args{"account_id": "123456", "limit": -3}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := inv.Invoke(ctx, DomainBanking, "get_transaction_history", tc.args)
			require.True(t, res.OK())
			hist := res.Payload.(TransactionHistory)
			assert.Equal(t, tc.count, hist.Count)
			assert.Len(t, hist.Transactions, tc.count)
			if tc.count > 0 {
				assert.Equal(t, "TXN-001", hist.Transactions[0].ID)
			}
		})
	}

	res := inv.Invoke(ctx, DomainBanking, "get_transaction_history", Args{"account_id": "nope"})
	assert.Equal(t, NotFound, res.Kind)
}
