package reconciler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"checkout-service/models"
	"checkout-service/reconciler"
)

func TestDecideDirectPay(t *testing.T) {
	cases := []struct {
		name    string
		current models.OrderStatus
		allowed bool
	}{
		{"created order is payable", models.OrderStatusCreated, true},
		{"failed order is payable again", models.OrderStatusFailed, true},
		{"pending order is rejected", models.OrderStatusPending, false},
		{"paid order is rejected", models.OrderStatusPaid, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := reconciler.Decide(tc.current, reconciler.EventDirectPay)
			assert.Equal(t, tc.allowed, d.Allowed)
			if tc.allowed {
				assert.True(t, d.Charge)
			}
		})
	}
}

func TestDecideSourceChargeable(t *testing.T) {
	cases := []struct {
		name    string
		current models.OrderStatus
		allowed bool
	}{
		{"created order may be charged", models.OrderStatusCreated, true},
		{"pending order is rejected", models.OrderStatusPending, false},
		{"paid order is rejected", models.OrderStatusPaid, false},
		{"failed order is rejected", models.OrderStatusFailed, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := reconciler.Decide(tc.current, reconciler.EventSourceChargeable)
			assert.Equal(t, tc.allowed, d.Allowed)
		})
	}
}

func TestDecideOutcomeEvents(t *testing.T) {
	// Outcome events report something that already happened at the gateway,
	// so they are accepted from any current status.
	all := []models.OrderStatus{
		models.OrderStatusCreated,
		models.OrderStatusPending,
		models.OrderStatusPaid,
		models.OrderStatusFailed,
	}

	for _, current := range all {
		d := reconciler.Decide(current, reconciler.EventChargeSucceeded)
		assert.True(t, d.Allowed)
		assert.Equal(t, models.OrderStatusPaid, d.Next)

		d = reconciler.Decide(current, reconciler.EventPaymentFailure)
		assert.True(t, d.Allowed)
		assert.Equal(t, models.OrderStatusFailed, d.Next)
	}
}

func TestChargeOutcome(t *testing.T) {
	cases := []struct {
		name   string
		charge *models.Charge
		want   models.OrderStatus
	}{
		{"succeeded charge pays the order", &models.Charge{Status: models.ChargeStatusSucceeded}, models.OrderStatusPaid},
		{"pending charge carries over", &models.Charge{Status: models.ChargeStatusPending}, models.OrderStatus("pending")},
		{"failed charge fails the order", &models.Charge{Status: models.ChargeStatusFailed}, models.OrderStatusFailed},
		{"missing charge fails the order", nil, models.OrderStatusFailed},
		{"empty status fails the order", &models.Charge{}, models.OrderStatusFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, reconciler.ChargeOutcome(tc.charge))
		})
	}
}
