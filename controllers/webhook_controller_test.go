package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"checkout-service/models"
	"checkout-service/reconciler"
	"checkout-service/services"
)

func webhookRouter(gw *fakeGateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	rec := reconciler.New(gw, zap.NewNop())
	wc := NewWebhookController(services.NewWebhookParser(""), rec, zap.NewNop())
	router := gin.New()
	router.POST("/webhook", wc.HandleWebhook)
	return router
}

func TestWebhookSourceChargeableChargesOrder(t *testing.T) {
	gw := &fakeGateway{
		order:        &models.Order{ID: "or_1", Amount: 999, Currency: "usd", Status: models.OrderStatusCreated},
		chargeResult: &models.Charge{ID: "ch_1", Status: models.ChargeStatusSucceeded},
	}
	router := webhookRouter(gw)

	payload := `{
		"type": "source.chargeable",
		"data": {"object": {
			"object": "source",
			"id": "src_1",
			"status": "chargeable",
			"metadata": {"order": "or_1"}
		}}
	}`
	recorder := performJSON(t, router, http.MethodPost, "/webhook", payload)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "success")
	require.Len(t, gw.chargeCalls, 1)
	assert.Equal(t, models.OrderStatusPaid, gw.statusUpdates["or_1"])
}

func TestWebhookSourceChargeableConflict(t *testing.T) {
	gw := &fakeGateway{
		order: &models.Order{ID: "or_1", Amount: 999, Status: models.OrderStatusPaid},
	}
	router := webhookRouter(gw)

	payload := `{
		"type": "source.chargeable",
		"data": {"object": {
			"object": "source",
			"id": "src_1",
			"status": "chargeable",
			"metadata": {"order": "or_1"}
		}}
	}`
	recorder := performJSON(t, router, http.MethodPost, "/webhook", payload)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Empty(t, gw.chargeCalls)
}

func TestWebhookSourceChargeableConfirmsIntent(t *testing.T) {
	gw := &fakeGateway{
		intent: &models.PaymentIntent{ID: "pi_1", Status: models.IntentStatusRequiresPaymentMethod},
	}
	router := webhookRouter(gw)

	payload := `{
		"type": "source.chargeable",
		"data": {"object": {
			"object": "source",
			"id": "src_1",
			"status": "chargeable",
			"metadata": {"paymentIntent": "pi_1"}
		}}
	}`
	recorder := performJSON(t, router, http.MethodPost, "/webhook", payload)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, []string{"pi_1"}, gw.confirmed)
}

func TestWebhookSourceFailedMarksOrderFailed(t *testing.T) {
	gw := &fakeGateway{}
	router := webhookRouter(gw)

	payload := `{
		"type": "source.failed",
		"data": {"object": {
			"object": "source",
			"id": "src_1",
			"status": "failed",
			"metadata": {"order": "or_1"}
		}}
	}`
	recorder := performJSON(t, router, http.MethodPost, "/webhook", payload)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, models.OrderStatusFailed, gw.statusUpdates["or_1"])
}

func TestWebhookChargeSucceededMarksOrderPaid(t *testing.T) {
	gw := &fakeGateway{}
	router := webhookRouter(gw)

	payload := `{
		"type": "charge.succeeded",
		"data": {"object": {
			"object": "charge",
			"id": "ch_1",
			"status": "succeeded",
			"source": {"id": "src_1", "metadata": {"order": "or_1"}}
		}}
	}`
	recorder := performJSON(t, router, http.MethodPost, "/webhook", payload)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, models.OrderStatusPaid, gw.statusUpdates["or_1"])
}

func TestWebhookChargeFailedMarksOrderFailed(t *testing.T) {
	gw := &fakeGateway{}
	router := webhookRouter(gw)

	payload := `{
		"type": "charge.failed",
		"data": {"object": {
			"object": "charge",
			"id": "ch_1",
			"status": "failed",
			"source": {"id": "src_1", "metadata": {"order": "or_1"}}
		}}
	}`
	recorder := performJSON(t, router, http.MethodPost, "/webhook", payload)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, models.OrderStatusFailed, gw.statusUpdates["or_1"])
}

func TestWebhookUnhandledEventAcked(t *testing.T) {
	gw := &fakeGateway{}
	router := webhookRouter(gw)

	payload := `{
		"type": "customer.created",
		"data": {"object": {"object": "customer", "id": "cus_1"}}
	}`
	recorder := performJSON(t, router, http.MethodPost, "/webhook", payload)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, gw.statusUpdates)
}

func TestWebhookMalformedBody(t *testing.T) {
	router := webhookRouter(&fakeGateway{})

	recorder := performJSON(t, router, http.MethodPost, "/webhook", "not json")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
