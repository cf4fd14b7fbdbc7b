package reconciler

import (
	"fmt"

	"checkout-service/models"
)

// EventKind is a trigger that may move an order through its status lifecycle.
type EventKind string

const (
	// EventDirectPay is a POST /orders/:id/pay request carrying a source.
	EventDirectPay EventKind = "direct_pay"
	// EventSourceChargeable is an asynchronous source.chargeable notification.
	EventSourceChargeable EventKind = "source.chargeable"
	// EventChargeSucceeded is a charge.succeeded notification.
	EventChargeSucceeded EventKind = "charge.succeeded"
	// EventPaymentFailure covers source.failed, source.canceled and
	// charge.failed notifications.
	EventPaymentFailure EventKind = "payment_failure"
)

// Decision is the outcome of consulting the transition table: whether the
// trigger may act at all, and if so whether the next status comes from a fresh
// charge attempt or is dictated by the event itself.
type Decision struct {
	Allowed bool
	Charge  bool               // a charge attempt determines the next status
	Next    models.OrderStatus // set when the event dictates the status outright
}

type rule struct {
	rejected map[models.OrderStatus]bool
	charge   bool
	next     models.OrderStatus
}

// rules is the state x event transition table. The direct-pay path rejects
// orders that are pending or already paid; the webhook charge path is
// stricter and also rejects failed, so only an order no payment attempt has
// touched may be charged asynchronously. charge.succeeded and the failure
// events record an outcome that already happened at the gateway and are never
// rejected.
var rules = map[EventKind]rule{
	EventDirectPay: {
		rejected: statuses(models.OrderStatusPending, models.OrderStatusPaid),
		charge:   true,
	},
	EventSourceChargeable: {
		rejected: statuses(models.OrderStatusPending, models.OrderStatusPaid, models.OrderStatusFailed),
		charge:   true,
	},
	EventChargeSucceeded: {next: models.OrderStatusPaid},
	EventPaymentFailure:  {next: models.OrderStatusFailed},
}

func statuses(ss ...models.OrderStatus) map[models.OrderStatus]bool {
	m := make(map[models.OrderStatus]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}

// Decide consults the transition table. It performs no I/O, so the transition
// rules can be tested without a gateway.
func Decide(current models.OrderStatus, event EventKind) Decision {
	r := rules[event]
	if r.rejected[current] {
		return Decision{}
	}
	return Decision{Allowed: true, Charge: r.charge, Next: r.next}
}

// ChargeOutcome maps the result of a charge attempt onto an order status: a
// succeeded charge marks the order paid, any other reported status is carried
// over verbatim, and a missing charge means the attempt failed.
func ChargeOutcome(ch *models.Charge) models.OrderStatus {
	switch {
	case ch == nil:
		return models.OrderStatusFailed
	case ch.Status == models.ChargeStatusSucceeded:
		return models.OrderStatusPaid
	case ch.Status != "":
		return models.OrderStatus(ch.Status)
	default:
		return models.OrderStatusFailed
	}
}

// ConflictError signals a business-rule conflict: the order or intent is not
// in a status that permits the requested transition. Handlers map it to 403.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func conflictf(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}
