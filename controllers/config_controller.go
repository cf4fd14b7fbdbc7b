package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkout-service/config"
	"checkout-service/inventory"
	"checkout-service/models"
)

// StoreConfig is the exact shape the checkout frontend reads; no extra keys,
// no omissions.
type StoreConfig struct {
	StripePublishableKey string                  `json:"stripePublishableKey"`
	StripeCountry        string                  `json:"stripeCountry"`
	Country              string                  `json:"country"`
	Currency             string                  `json:"currency"`
	PaymentMethods       []string                `json:"paymentMethods"`
	ShippingOptions      []models.ShippingOption `json:"shippingOptions"`
}

// ConfigController exposes the store configuration.
type ConfigController struct {
	cfg *config.Config
}

func NewConfigController(cfg *config.Config) *ConfigController {
	return &ConfigController{cfg: cfg}
}

// GetConfig handles GET /config
func (cc *ConfigController) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, StoreConfig{
		StripePublishableKey: cc.cfg.StripePublishableKey,
		StripeCountry:        cc.cfg.StripeAccountCountry,
		Country:              cc.cfg.Country,
		Currency:             cc.cfg.Currency,
		PaymentMethods:       cc.cfg.PaymentMethods,
		ShippingOptions:      inventory.ShippingOptions(),
	})
}
