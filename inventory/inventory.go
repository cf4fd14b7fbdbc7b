// Package inventory reads the product catalog from the payment gateway and
// computes checkout amounts. The gateway owns the catalog; nothing is cached
// locally.
package inventory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"checkout-service/models"
	"checkout-service/services"
)

// Catalog is the read side of the product inventory.
type Catalog interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	RetrieveProduct(ctx context.Context, id string) (*models.Product, error)
	ListSKUs(ctx context.Context, productID string) ([]models.SKU, error)
	CalculatePaymentAmount(ctx context.Context, items []models.Item) (int64, error)
}

type catalogService struct {
	gateway services.Gateway
	logger  *zap.Logger
}

func NewCatalog(gateway services.Gateway, logger *zap.Logger) Catalog {
	return &catalogService{gateway: gateway, logger: logger}
}

func (s *catalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.gateway.ListProducts(ctx)
}

func (s *catalogService) RetrieveProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.gateway.GetProduct(ctx, id)
}

func (s *catalogService) ListSKUs(ctx context.Context, productID string) ([]models.SKU, error) {
	return s.gateway.ListSKUs(ctx, productID)
}

// CalculatePaymentAmount sums price x quantity over the basket, matching each
// item against the SKUs known to the gateway. An item referencing an unknown
// SKU fails the whole computation rather than silently pricing at zero.
func (s *catalogService) CalculatePaymentAmount(ctx context.Context, items []models.Item) (int64, error) {
	skus, err := s.gateway.ListSKUs(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("listing SKUs: %w", err)
	}

	prices := make(map[string]int64, len(skus))
	for _, sku := range skus {
		prices[sku.ID] = sku.Price
	}

	var total int64
	for _, item := range items {
		price, ok := prices[item.Parent]
		if !ok {
			return 0, fmt.Errorf("no SKU found for item %q", item.Parent)
		}
		total += price * item.Quantity
	}
	return total, nil
}
