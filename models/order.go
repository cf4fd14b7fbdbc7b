package models

// OrderStatus is the application-level payment status tracked on an order.
// It lives in the order's metadata at the gateway; this service holds no copy.
type OrderStatus string

const (
	OrderStatusCreated OrderStatus = "created"
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

// Terminal reports whether the status must never be overwritten.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusPaid || s == OrderStatusFailed
}

// Address is the shipping destination collected at checkout.
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Shipping bundles the recipient with the destination address.
type Shipping struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone,omitempty"`
	Address Address `json:"address"`
}

// Item references a SKU (by its id, historically called "parent") and a quantity.
type Item struct {
	Parent   string `json:"parent"`
	Quantity int64  `json:"quantity"`
}

// Order mirrors the gateway's order record. The gateway is the sole source of
// truth; an Order value is always a snapshot fetched for the current request.
type Order struct {
	ID              string      `json:"id"`
	Amount          int64       `json:"amount"` // minor units
	Currency        string      `json:"currency"`
	Email           string      `json:"email"`
	Items           []Item      `json:"items,omitempty"`
	Shipping        *Shipping   `json:"shipping,omitempty"`
	Status          OrderStatus `json:"status"`
	PaymentIntentID string      `json:"payment_intent_id,omitempty"`
	ClientSecret    string      `json:"client_secret,omitempty"`
}
