package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout-service/config"
)

func TestGetConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		StripePublishableKey: "pk_test_123",
		StripeAccountCountry: "US",
		Country:              "US",
		Currency:             "eur",
		PaymentMethods:       []string{"card", "ideal"},
	}
	cc := NewConfigController(cfg)

	router := gin.New()
	router.GET("/config", cc.GetConfig)

	recorder := performJSON(t, router, http.MethodGet, "/config", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	// The frontend reads exactly these keys.
	for _, key := range []string{
		"stripePublishableKey", "stripeCountry", "country",
		"currency", "paymentMethods", "shippingOptions",
	} {
		assert.Contains(t, body, key)
	}
	assert.Len(t, body, 6)

	var options []map[string]interface{}
	require.NoError(t, json.Unmarshal(body["shippingOptions"], &options))
	assert.Len(t, options, 2)
}
