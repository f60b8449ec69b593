// In file: internal/nlu/classifier.go

// Package nlu turns raw utterances into intents with fixed keyword rules.
//
// Rules are checked in a fixed order and the first match wins, even when a
// later rule would also match: "order pizza with the money in my account" is
// an order_food intent, not check_balance. Matching is plain substring search
// on the lower-cased text.
package nlu

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	orderFoodTriggers = []string{"pizza", "biryani", "burger", "pasta", "food"}
	// foodItems is searched in order for the item slot; it is not the same
	// set as the triggers.
	foodItems = []string{"pizza", "biryani", "burger", "pasta", "chicken", "veg"}

	purchaseKeywords = []string{"buy", "purchase", "get me"}
	productItems     = []string{"kindle", "echo", "fire tv", "usb"}

	balanceKeywords = []string{"balance", "account", "money"}
	paymentKeywords = []string{"pay", "payment", "transfer"}

	numberWords = []struct {
		word  string
		value int
	}{
		{"one", 1}, {"two", 2}, {"three", 3}, {"four", 4}, {"five", 5},
		{"six", 6}, {"seven", 7}, {"eight", 8}, {"nine", 9}, {"ten", 10},
	}
)

const (
	defaultFoodItem    = "pizza"
	defaultProductItem = "kindle"
)

var (
	digitsRegex = regexp.MustCompile(`\d+`)
	amountRegex = regexp.MustCompile(`\$?(\d+\.?\d*)`)
)

// Classifier maps text to an Intent. It holds no mutable state and is safe for
// concurrent use.
type Classifier struct {
	accountID string
}

// NewClassifier returns a classifier that resolves every banking utterance to
// accountID. There is no session, so a single demo account stands in for "my account".
func NewClassifier(accountID string) *Classifier {
	return &Classifier{accountID: accountID}
}

// Classify never fails; text that matches no rule yields an Unknown intent.
func (c *Classifier) Classify(text string) Intent {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "order") && containsAny(lower, orderFoodTriggers):
		return newIntent(OrderFood, map[string]any{
			SlotItem:     firstPresent(lower, foodItems, defaultFoodItem),
			SlotQuantity: extractQuantity(lower),
		})

	case containsAny(lower, purchaseKeywords) || containsAny(lower, productItems):
		return newIntent(OrderProduct, map[string]any{
			SlotItem:     firstPresent(lower, productItems, defaultProductItem),
			SlotQuantity: extractQuantity(lower),
		})

	case containsAny(lower, balanceKeywords):
		return newIntent(CheckBalance, map[string]any{
			SlotAccountID: c.accountID,
		})

	case containsAny(lower, paymentKeywords):
		return newIntent(ProcessPayment, map[string]any{
			SlotAccountID: c.accountID,
			SlotAmount:    extractAmount(lower),
			SlotMerchant:  UnresolvedMerchant,
		})
	}

	return newIntent(Unknown, nil)
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// firstPresent returns the first keyword, in declaration order, that occurs in text.
func firstPresent(text string, keywords []string, fallback string) string {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return k
		}
	}
	return fallback
}

// extractQuantity takes the first run of digits, then the first number word
// "one".."ten" (checked in ascending order), then 1.
func extractQuantity(text string) int {
	if m := digitsRegex.FindString(text); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n
		}
	}
	for _, nw := range numberWords {
		if strings.Contains(text, nw.word) {
			return nw.value
		}
	}
	return 1
}

// extractAmount takes the first number, optionally $-prefixed and with a
// decimal point. It returns 0 when there is none.
func extractAmount(text string) float64 {
	m := amountRegex.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return f
}
