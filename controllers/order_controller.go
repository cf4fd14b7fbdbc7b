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

// OrderController creates orders and runs the direct-pay flow against them.
type OrderController struct {
	gateway    services.Gateway
	reconciler *reconciler.Reconciler
	logger     *zap.Logger
}

func NewOrderController(gateway services.Gateway, rec *reconciler.Reconciler, logger *zap.Logger) *OrderController {
	return &OrderController{gateway: gateway, reconciler: rec, logger: logger}
}

// CreateOrder handles POST /orders
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// The checkout surface does not distinguish invalid from forbidden.
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	order, err := oc.gateway.CreateOrder(c.Request.Context(), req)
	if err != nil {
		oc.logger.Error("creating order failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
		return
	}

	oc.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.Int64("amount", order.Amount),
		zap.String("currency", order.Currency),
	)
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// PayOrder handles POST /orders/:id/pay
func (oc *OrderController) PayOrder(c *gin.Context) {
	var req models.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	order, src, err := oc.reconciler.PayOrder(c.Request.Context(), c.Param("id"), req.Source)
	if err != nil {
		var conflict *reconciler.ConflictError
		if errors.As(err, &conflict) {
			// Return the conflicting payload so the frontend can inspect it.
			c.JSON(http.StatusForbidden, gin.H{"order": order, "source": src})
			return
		}
		oc.logger.Error("paying order failed", zap.String("order_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to pay order"})
		return
	}

	oc.logger.Info("pay attempt processed",
		zap.String("order_id", order.ID),
		zap.String("status", string(order.Status)),
	)
	c.JSON(http.StatusOK, gin.H{"order": order, "source": src})
}
