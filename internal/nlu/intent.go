// In file: internal/nlu/intent.go
package nlu

// Tag names what an utterance asks for.
type Tag string

const (
	OrderFood      Tag = "order_food"
	OrderProduct   Tag = "order_product"
	CheckBalance   Tag = "check_balance"
	ProcessPayment Tag = "process_payment"
	Unknown        Tag = "unknown"
)

// Slot names.
const (
	SlotItem      = "item"
	SlotQuantity  = "quantity"
	SlotAccountID = "account_id"
	SlotAmount    = "amount"
	SlotMerchant  = "merchant"
)

// UnresolvedMerchant fills the merchant slot of a payment; the classifier never
// extracts a recipient.
const UnresolvedMerchant = "Unknown"

// Intent is the classified purpose of one utterance plus the slots extracted
// from it. It is immutable once returned by Classify.
type Intent struct {
	Tag   Tag
	slots map[string]any
}

func newIntent(tag Tag, slots map[string]any) Intent {
	return Intent{Tag: tag, slots: slots}
}

// Slot returns the raw value of a slot.
func (i Intent) Slot(name string) (any, bool) {
	v, ok := i.slots[name]
	return v, ok
}

// Slots returns a copy of every slot.
func (i Intent) Slots() map[string]any {
	out := make(map[string]any, len(i.slots))
	for k, v := range i.slots {
		out[k] = v
	}
	return out
}

func (i Intent) Item() string {
	s, _ := i.slots[SlotItem].(string)
	return s
}

// Quantity returns the quantity slot, or 1 when the intent has none.
func (i Intent) Quantity() int {
	if q, ok := i.slots[SlotQuantity].(int); ok {
		return q
	}
	return 1
}

func (i Intent) AccountID() string {
	s, _ := i.slots[SlotAccountID].(string)
	return s
}

func (i Intent) Amount() float64 {
	f, _ := i.slots[SlotAmount].(float64)
	return f
}

func (i Intent) Merchant() string {
	s, _ := i.slots[SlotMerchant].(string)
	return s
}
