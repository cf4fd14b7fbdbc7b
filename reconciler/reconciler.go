package reconciler

import (
	"context"

	"go.uber.org/zap"

	"checkout-service/models"
	"checkout-service/services"
)

// ThreeDSecureThreshold is the order amount (minor units) above which a card
// source is strengthened to a 3-D-Secure source regardless of what the card
// itself requires.
const ThreeDSecureThreshold = 5000

// testModeToken replaces a non-livemode source id so charges work against the
// gateway's test environment.
const testModeToken = "tok_visa"

// Reconciler decides how payment events move orders and payment intents
// through their status lifecycle, and performs the gateway calls each
// transition requires. The pure transition rules live in Decide; everything
// here is orchestration around them.
type Reconciler struct {
	gateway services.Gateway
	logger  *zap.Logger
}

func New(gateway services.Gateway, logger *zap.Logger) *Reconciler {
	return &Reconciler{gateway: gateway, logger: logger}
}

// PayOrder runs the direct-pay flow: fetch the order, check the transition
// table, optionally strengthen the source to 3-D-Secure, then charge it with
// an idempotency key equal to the order id and record the outcome on the
// order. Card declines propagate to the caller on this path.
func (r *Reconciler) PayOrder(ctx context.Context, orderID string, src models.Source) (*models.Order, *models.Source, error) {
	order, err := r.gateway.GetOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	if d := Decide(order.Status, EventDirectPay); !d.Allowed {
		return order, &src, conflictf("order %s already has a status of %s", order.ID, order.Status)
	}

	if src.Type == "card" && (src.RequiresThreeDSecure() || order.Amount > ThreeDSecureThreshold) {
		upgraded, err := r.gateway.CreateThreeDSecureSource(ctx, src, order)
		if err != nil {
			return nil, nil, err
		}
		r.logger.Info("source strengthened to 3-D-Secure",
			zap.String("order_id", order.ID),
			zap.String("source_id", upgraded.ID),
		)
		src = *upgraded
	}

	if src.Status == models.SourceStatusChargeable {
		chargeID := src.ID
		if !src.Livemode {
			// Test mode: charge a token the test gateway accepts.
			chargeID = testModeToken
		}
		charge, err := r.gateway.CreateCharge(ctx, services.ChargeRequest{
			SourceID:       chargeID,
			Amount:         order.Amount,
			Currency:       order.Currency,
			ReceiptEmail:   order.Email,
			IdempotencyKey: order.ID,
		})
		if err != nil {
			return nil, nil, err
		}

		status := ChargeOutcome(charge)
		if err := r.gateway.UpdateOrderStatus(ctx, order.ID, status); err != nil {
			return nil, nil, err
		}
		order.Status = status
	}

	return order, &src, nil
}

// HandleSourceChargeable processes a source.chargeable notification. A source
// linked to an order runs the charge flow; one linked to a payment intent
// confirms it; an unlinked source is ignored.
func (r *Reconciler) HandleSourceChargeable(ctx context.Context, src models.Source) error {
	switch {
	case src.OrderID != "":
		return r.chargeOrder(ctx, src)
	case src.PaymentIntentID != "":
		return r.confirmIntent(ctx, src)
	default:
		r.logger.Info("chargeable source has no order or intent link, ignoring",
			zap.String("source_id", src.ID))
		return nil
	}
}

// chargeOrder is the webhook-side charge flow. Unlike the direct-pay path it
// looks the order up by id, and a card decline is recorded as a failed order
// instead of surfacing: the webhook must still be acknowledged or the gateway
// would keep redelivering it.
func (r *Reconciler) chargeOrder(ctx context.Context, src models.Source) error {
	order, err := r.gateway.GetOrder(ctx, src.OrderID)
	if err != nil {
		return err
	}

	if d := Decide(order.Status, EventSourceChargeable); !d.Allowed {
		return conflictf("order already has a status of %s", order.Status)
	}

	var status models.OrderStatus
	charge, err := r.gateway.CreateCharge(ctx, services.ChargeRequest{
		SourceID:       src.ID,
		Amount:         order.Amount,
		Currency:       order.Currency,
		ReceiptEmail:   order.Email,
		IdempotencyKey: order.ID,
	})
	switch {
	case err == nil:
		status = ChargeOutcome(charge)
	case services.IsCardDeclined(err):
		r.logger.Info("card declined during webhook charge",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
		status = models.OrderStatusFailed
	default:
		return err
	}

	return r.gateway.UpdateOrderStatus(ctx, order.ID, status)
}

// confirmIntent confirms the linked payment intent with the chargeable
// source, but only when the intent is still waiting for a payment method.
func (r *Reconciler) confirmIntent(ctx context.Context, src models.Source) error {
	pi, err := r.gateway.GetPaymentIntent(ctx, src.PaymentIntentID)
	if err != nil {
		return err
	}

	if pi.Status != models.IntentStatusRequiresPaymentMethod {
		return conflictf("payment intent %s has a status of %s", pi.ID, pi.Status)
	}

	_, err = r.gateway.ConfirmPaymentIntent(ctx, pi.ID, src.ID)
	return err
}

// HandleChargeSucceeded records a successful charge reported by the gateway,
// addressing the order by the id carried in the charged source's metadata.
// The order is not fetched on this path: the event is never rejected and its
// status is fixed by the table.
func (r *Reconciler) HandleChargeSucceeded(ctx context.Context, orderID string) error {
	d := Decide("", EventChargeSucceeded)
	return r.gateway.UpdateOrderStatus(ctx, orderID, d.Next)
}

// HandleFailure processes source.failed, source.canceled and charge.failed
// notifications: the linked order is marked failed, and a linked payment
// intent is cancelled unless it already reached a terminal status.
func (r *Reconciler) HandleFailure(ctx context.Context, orderID, intentID string) error {
	if orderID != "" {
		d := Decide("", EventPaymentFailure)
		if err := r.gateway.UpdateOrderStatus(ctx, orderID, d.Next); err != nil {
			return err
		}
	}

	if intentID != "" {
		pi, err := r.gateway.GetPaymentIntent(ctx, intentID)
		if err != nil {
			return err
		}
		if pi.Status == models.IntentStatusSucceeded || pi.Status == models.IntentStatusCanceled {
			r.logger.Info("skipping cancellation of terminal payment intent",
				zap.String("payment_intent_id", pi.ID),
				zap.String("status", string(pi.Status)),
			)
			return nil
		}
		if _, err := r.gateway.CancelPaymentIntent(ctx, intentID); err != nil {
			return err
		}
	}

	return nil
}

// HandlePaymentIntentEvent records intent lifecycle notifications. Nothing to
// reconcile: the intent's status already changed at the gateway.
func (r *Reconciler) HandlePaymentIntentEvent(eventType string, pi models.PaymentIntent) {
	switch eventType {
	case "payment_intent.succeeded":
		r.logger.Info("payment intent succeeded", zap.String("payment_intent_id", pi.ID))
	case "payment_intent.payment_failed":
		r.logger.Warn("payment intent failed",
			zap.String("payment_intent_id", pi.ID),
			zap.String("last_payment_error", pi.LastPaymentError),
		)
	}
}
