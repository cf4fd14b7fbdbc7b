package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"checkout-service/models"
	"checkout-service/services"
)

// fakeGateway is a canned-response gateway shared by the controller tests.
type fakeGateway struct {
	createdOrder   *models.Order
	createOrderErr error

	order    *models.Order
	orderErr error

	chargeResult *models.Charge
	chargeErr    error
	chargeCalls  []services.ChargeRequest

	intent           *models.PaymentIntent
	intentErr        error
	intentAmounts    []int64
	intentCurrencies []string
	updatedAmounts   []int64
	confirmed        []string
	canceled         []string

	products    []models.Product
	productsErr error
	product     *models.Product
	productErr  error
	skus        []models.SKU

	statusUpdates map[string]models.OrderStatus
}

func (f *fakeGateway) CreateOrder(_ context.Context, _ models.OrderRequest) (*models.Order, error) {
	return f.createdOrder, f.createOrderErr
}

func (f *fakeGateway) GetOrder(_ context.Context, _ string) (*models.Order, error) {
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	o := *f.order
	return &o, nil
}

func (f *fakeGateway) UpdateOrderStatus(_ context.Context, id string, status models.OrderStatus) error {
	if f.statusUpdates == nil {
		f.statusUpdates = map[string]models.OrderStatus{}
	}
	f.statusUpdates[id] = status
	return nil
}

func (f *fakeGateway) CreateCharge(_ context.Context, req services.ChargeRequest) (*models.Charge, error) {
	f.chargeCalls = append(f.chargeCalls, req)
	return f.chargeResult, f.chargeErr
}

func (f *fakeGateway) CreateThreeDSecureSource(_ context.Context, _ models.Source, _ *models.Order) (*models.Source, error) {
	return nil, nil
}

func (f *fakeGateway) CreatePaymentIntent(_ context.Context, amount int64, currency string, _ string) (*models.PaymentIntent, error) {
	f.intentAmounts = append(f.intentAmounts, amount)
	f.intentCurrencies = append(f.intentCurrencies, currency)
	return f.intent, f.intentErr
}

func (f *fakeGateway) GetPaymentIntent(_ context.Context, _ string) (*models.PaymentIntent, error) {
	return f.intent, f.intentErr
}

func (f *fakeGateway) UpdatePaymentIntentAmount(_ context.Context, _ string, amount int64) (*models.PaymentIntent, error) {
	f.updatedAmounts = append(f.updatedAmounts, amount)
	return f.intent, f.intentErr
}

func (f *fakeGateway) UpdatePaymentIntentCurrency(_ context.Context, _, currency string, _ []string) (*models.PaymentIntent, error) {
	f.intentCurrencies = append(f.intentCurrencies, currency)
	return f.intent, f.intentErr
}

func (f *fakeGateway) ConfirmPaymentIntent(_ context.Context, id, _ string) (*models.PaymentIntent, error) {
	f.confirmed = append(f.confirmed, id)
	return f.intent, nil
}

func (f *fakeGateway) CancelPaymentIntent(_ context.Context, id string) (*models.PaymentIntent, error) {
	f.canceled = append(f.canceled, id)
	return f.intent, nil
}

func (f *fakeGateway) ListProducts(_ context.Context) ([]models.Product, error) {
	return f.products, f.productsErr
}

func (f *fakeGateway) GetProduct(_ context.Context, _ string) (*models.Product, error) {
	return f.product, f.productErr
}

func (f *fakeGateway) ListSKUs(_ context.Context, _ string) ([]models.SKU, error) {
	return f.skus, nil
}

func (f *fakeGateway) CreateProduct(_ context.Context, _ models.Product) error { return nil }
func (f *fakeGateway) CreateSKU(_ context.Context, _ models.SKU) error         { return nil }

// fakeCatalog prices every lookup from a fixed table.
type fakeCatalog struct {
	products []models.Product
	product  *models.Product
	skus     []models.SKU
	amount   int64
	err      error
}

func (f *fakeCatalog) ListProducts(_ context.Context) ([]models.Product, error) {
	return f.products, f.err
}

func (f *fakeCatalog) RetrieveProduct(_ context.Context, _ string) (*models.Product, error) {
	return f.product, f.err
}

func (f *fakeCatalog) ListSKUs(_ context.Context, _ string) ([]models.SKU, error) {
	return f.skus, f.err
}

func (f *fakeCatalog) CalculatePaymentAmount(_ context.Context, _ []models.Item) (int64, error) {
	return f.amount, f.err
}

type fakeSeeder struct {
	called bool
	err    error
	after  func()
}

func (f *fakeSeeder) CreateData(_ context.Context) error {
	f.called = true
	if f.after != nil {
		f.after()
	}
	return f.err
}

func performJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}
