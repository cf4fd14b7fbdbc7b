package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"checkout-service/models"
	"checkout-service/reconciler"
	"checkout-service/services"
)

// EventParser turns a raw webhook request into a typed event, verifying the
// signature when a signing secret is configured.
type EventParser interface {
	Parse(req *http.Request) (*services.WebhookEvent, error)
}

// WebhookController receives asynchronous payment notifications from the
// gateway and feeds them to the reconciler. Whatever the business outcome,
// a successfully received event is acknowledged with 200 so the gateway does
// not keep redelivering it; only conflicts (403) and undeliverable state
// (500, retried by the gateway) break that rule.
type WebhookController struct {
	parser     EventParser
	reconciler *reconciler.Reconciler
	logger     *zap.Logger
}

func NewWebhookController(parser EventParser, rec *reconciler.Reconciler, logger *zap.Logger) *WebhookController {
	return &WebhookController{parser: parser, reconciler: rec, logger: logger}
}

// HandleWebhook handles POST /webhook
func (wc *WebhookController) HandleWebhook(c *gin.Context) {
	event, err := wc.parser.Parse(c.Request)
	if err != nil {
		wc.logger.Warn("webhook rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook"})
		return
	}

	wc.logger.Info("webhook received", zap.String("event_type", event.Type))

	ctx := c.Request.Context()
	switch {
	case event.Source != nil:
		src := models.Source{
			ID:              event.Source.ID,
			Status:          models.SourceStatus(event.Source.Status),
			OrderID:         event.Source.OrderID,
			PaymentIntentID: event.Source.PaymentIntentID,
		}
		switch src.Status {
		case models.SourceStatusChargeable:
			err = wc.reconciler.HandleSourceChargeable(ctx, src)
		case models.SourceStatusFailed, models.SourceStatusCanceled:
			err = wc.reconciler.HandleFailure(ctx, src.OrderID, src.PaymentIntentID)
		}

	case event.Charge != nil && event.Charge.OrderID != "":
		switch models.ChargeStatus(event.Charge.Status) {
		case models.ChargeStatusSucceeded:
			err = wc.reconciler.HandleChargeSucceeded(ctx, event.Charge.OrderID)
		case models.ChargeStatusFailed:
			err = wc.reconciler.HandleFailure(ctx, event.Charge.OrderID, "")
		}

	case event.Intent != nil:
		wc.reconciler.HandlePaymentIntentEvent(event.Type, models.PaymentIntent{
			ID:               event.Intent.ID,
			Status:           models.IntentStatus(event.Intent.Status),
			LastPaymentError: event.Intent.LastPaymentError,
		})

	default:
		wc.logger.Info("webhook event not handled", zap.String("event_type", event.Type))
	}

	if err != nil {
		var conflict *reconciler.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusForbidden, gin.H{"error": conflict.Message})
			return
		}
		wc.logger.Error("webhook processing failed", zap.String("event_type", event.Type), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
