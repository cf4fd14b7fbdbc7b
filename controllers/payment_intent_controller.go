package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"checkout-service/inventory"
	"checkout-service/models"
	"checkout-service/services"
)

// PaymentIntentController manages the payment-intent checkout flow.
type PaymentIntentController struct {
	gateway services.Gateway
	catalog inventory.Catalog
	logger  *zap.Logger
}

func NewPaymentIntentController(gateway services.Gateway, catalog inventory.Catalog, logger *zap.Logger) *PaymentIntentController {
	return &PaymentIntentController{gateway: gateway, catalog: catalog, logger: logger}
}

// CreateIntent handles POST /payment_intents
func (ic *PaymentIntentController) CreateIntent(c *gin.Context) {
	var req models.IntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	amount, err := ic.catalog.CalculatePaymentAmount(ctx, req.Items)
	if err != nil {
		ic.logger.Error("computing payment amount failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute payment amount"})
		return
	}

	pi, err := ic.gateway.CreatePaymentIntent(ctx, amount, req.Currency, "")
	if err != nil {
		ic.logger.Error("creating payment intent failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create payment intent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"paymentIntent": pi})
}

// ShippingChange handles POST /payment_intents/:id/shipping_change
func (ic *PaymentIntentController) ShippingChange(c *gin.Context) {
	var req models.ShippingChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	amount, err := ic.catalog.CalculatePaymentAmount(ctx, req.Items)
	if err != nil {
		ic.logger.Error("computing payment amount failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute payment amount"})
		return
	}

	shippingCost, err := inventory.ShippingCost(req.ShippingOption.ID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	pi, err := ic.gateway.UpdatePaymentIntentAmount(ctx, c.Param("id"), amount+shippingCost)
	if err != nil {
		ic.logger.Error("updating payment intent amount failed",
			zap.String("payment_intent_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment intent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"paymentIntent": pi})
}

// UpdateCurrency handles POST /payment_intents/:id/update_currency
func (ic *PaymentIntentController) UpdateCurrency(c *gin.Context) {
	var req models.UpdateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	pi, err := ic.gateway.UpdatePaymentIntentCurrency(c.Request.Context(), c.Param("id"), req.Currency, req.PaymentMethods)
	if err != nil {
		ic.logger.Error("updating payment intent currency failed",
			zap.String("payment_intent_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment intent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"paymentIntent": pi})
}

// intentStatus is the trimmed status view returned to the polling frontend.
type intentStatus struct {
	Status           string `json:"status"`
	LastPaymentError string `json:"last_payment_error,omitempty"`
}

// GetStatus handles GET /payment_intents/:id/status
func (ic *PaymentIntentController) GetStatus(c *gin.Context) {
	pi, err := ic.gateway.GetPaymentIntent(c.Request.Context(), c.Param("id"))
	if err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no such payment intent"})
			return
		}
		ic.logger.Error("retrieving payment intent failed",
			zap.String("payment_intent_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve payment intent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"paymentIntent": intentStatus{
		Status:           string(pi.Status),
		LastPaymentError: pi.LastPaymentError,
	}})
}
