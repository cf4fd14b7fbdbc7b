package services

import (
	"context"

	"checkout-service/models"
)

// ChargeRequest carries everything needed for a single charge attempt. The
// idempotency key is always the order id, which is what guarantees at most one
// real charge per order even when a direct pay request and a webhook race.
type ChargeRequest struct {
	SourceID       string
	Amount         int64
	Currency       string
	ReceiptEmail   string
	IdempotencyKey string
}

// Gateway is the surface of the external payment processor this service talks
// to. All state lives behind it; every method is a synchronous remote call.
type Gateway interface {
	CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error

	CreateCharge(ctx context.Context, req ChargeRequest) (*models.Charge, error)
	CreateThreeDSecureSource(ctx context.Context, src models.Source, order *models.Order) (*models.Source, error)

	CreatePaymentIntent(ctx context.Context, amount int64, currency string, orderID string) (*models.PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, id string) (*models.PaymentIntent, error)
	UpdatePaymentIntentAmount(ctx context.Context, id string, amount int64) (*models.PaymentIntent, error)
	UpdatePaymentIntentCurrency(ctx context.Context, id, currency string, paymentMethods []string) (*models.PaymentIntent, error)
	ConfirmPaymentIntent(ctx context.Context, id, sourceID string) (*models.PaymentIntent, error)
	CancelPaymentIntent(ctx context.Context, id string) (*models.PaymentIntent, error)

	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListSKUs(ctx context.Context, productID string) ([]models.SKU, error)
	CreateProduct(ctx context.Context, p models.Product) error
	CreateSKU(ctx context.Context, s models.SKU) error
}
