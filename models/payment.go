package models

// IntentStatus is the gateway-side payment intent lifecycle status.
type IntentStatus string

const (
	IntentStatusRequiresPaymentMethod IntentStatus = "requires_payment_method"
	IntentStatusRequiresConfirmation  IntentStatus = "requires_confirmation"
	IntentStatusRequiresAction        IntentStatus = "requires_action"
	IntentStatusProcessing            IntentStatus = "processing"
	IntentStatusSucceeded             IntentStatus = "succeeded"
	IntentStatusCanceled              IntentStatus = "canceled"
)

// PaymentIntent mirrors the gateway's payment intent object.
type PaymentIntent struct {
	ID               string       `json:"id"`
	Amount           int64        `json:"amount"`
	Currency         string       `json:"currency"`
	Status           IntentStatus `json:"status"`
	ClientSecret     string       `json:"client_secret,omitempty"`
	OrderID          string       `json:"order_id,omitempty"`
	LastPaymentError string       `json:"last_payment_error,omitempty"`
}

// SourceStatus is the lifecycle status of a payment source.
type SourceStatus string

const (
	SourceStatusChargeable SourceStatus = "chargeable"
	SourceStatusPending    SourceStatus = "pending"
	SourceStatusConsumed   SourceStatus = "consumed"
	SourceStatusFailed     SourceStatus = "failed"
	SourceStatusCanceled   SourceStatus = "canceled"
)

// Card carries the card attributes the reconciler cares about.
type Card struct {
	ThreeDSecure string `json:"three_d_secure,omitempty"`
}

// Source is a tokenized payment credential supplied by the client for a single
// charge attempt, or returned by the gateway when a source is strengthened.
// OrderID and PaymentIntentID come from the source's metadata and link it back
// to the record it is meant to pay.
type Source struct {
	ID              string       `json:"id"`
	Type            string       `json:"type"`
	Status          SourceStatus `json:"status"`
	Livemode        bool         `json:"livemode"`
	Card            *Card        `json:"card,omitempty"`
	OrderID         string       `json:"order_id,omitempty"`
	PaymentIntentID string       `json:"payment_intent_id,omitempty"`
}

// RequiresThreeDSecure reports whether the card behind this source mandates a
// 3-D-Secure authentication step.
func (s Source) RequiresThreeDSecure() bool {
	return s.Card != nil && s.Card.ThreeDSecure == "required"
}

// ChargeStatus is the outcome of a single charge attempt.
type ChargeStatus string

const (
	ChargeStatusSucceeded ChargeStatus = "succeeded"
	ChargeStatusPending   ChargeStatus = "pending"
	ChargeStatusFailed    ChargeStatus = "failed"
)

// Charge is the immutable result of attempting to collect payment.
type Charge struct {
	ID      string       `json:"id"`
	Status  ChargeStatus `json:"status"`
	OrderID string       `json:"order_id,omitempty"` // from the charged source's metadata
}
