package routes

import (
	"checkout-service/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterCheckoutRoutes wires the storefront API onto the engine. The webhook
// endpoint is registered alongside the rest: it authenticates with its event
// signature, not with middleware.
func RegisterCheckoutRoutes(
	r *gin.Engine,
	cc *controllers.ConfigController,
	pc *controllers.ProductController,
	oc *controllers.OrderController,
	ic *controllers.PaymentIntentController,
	wc *controllers.WebhookController,
) {
	r.GET("/config", cc.GetConfig)

	r.GET("/products", pc.ListProducts)
	r.GET("/products/:id", pc.RetrieveProduct)
	r.GET("/products/:id/skus", pc.ListSKUs)

	orders := r.Group("/orders")
	orders.POST("", oc.CreateOrder)
	orders.POST("/:id/pay", oc.PayOrder)

	intents := r.Group("/payment_intents")
	intents.POST("", ic.CreateIntent)
	intents.POST("/:id/shipping_change", ic.ShippingChange)
	intents.POST("/:id/update_currency", ic.UpdateCurrency)
	intents.GET("/:id/status", ic.GetStatus)

	r.POST("/webhook", wc.HandleWebhook)
}
