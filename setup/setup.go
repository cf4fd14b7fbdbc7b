// Package setup seeds the demo catalog at the gateway. Seeding is idempotent:
// it is skipped when the expected products already exist, and creates that
// collide with existing ids are logged and ignored.
package setup

import (
	"context"

	"go.uber.org/zap"

	"checkout-service/models"
	"checkout-service/services"
)

var expectedProductIDs = []string{"increment", "shirt", "pins"}

// ExpectedProductsExist reports whether the listing contains exactly the
// demo's three known products.
func ExpectedProductsExist(products []models.Product) bool {
	if len(products) != len(expectedProductIDs) {
		return false
	}

	existing := make(map[string]bool, len(products))
	for _, p := range products {
		existing[p.ID] = true
	}
	for _, id := range expectedProductIDs {
		if !existing[id] {
			return false
		}
	}
	return true
}

// Seeder creates the demo products and SKUs.
type Seeder struct {
	gateway services.Gateway
	logger  *zap.Logger
}

func NewSeeder(gateway services.Gateway, logger *zap.Logger) *Seeder {
	return &Seeder{gateway: gateway, logger: logger}
}

// CreateData creates the fixture products and their SKUs. A create that fails
// because the id already exists is fine; anything else surfaces.
func (s *Seeder) CreateData(ctx context.Context) error {
	for _, p := range fixtureProducts() {
		if err := s.gateway.CreateProduct(ctx, p); err != nil {
			if !services.IsAlreadyExists(err) {
				return err
			}
			s.logger.Info("product already exists, skipping", zap.String("product_id", p.ID))
		}
	}

	for _, sku := range fixtureSKUs() {
		if err := s.gateway.CreateSKU(ctx, sku); err != nil {
			if !services.IsAlreadyExists(err) {
				return err
			}
			s.logger.Info("SKU already exists, skipping", zap.String("sku_id", sku.ID))
		}
	}

	return nil
}

func fixtureProducts() []models.Product {
	return []models.Product{
		{
			ID:         "increment",
			Name:       "Increment Magazine",
			Type:       "good",
			Attributes: []string{"issue"},
		},
		{
			ID:         "pins",
			Name:       "Stripe Pins",
			Type:       "good",
			Attributes: []string{"set"},
		},
		{
			ID:         "shirt",
			Name:       "Stripe Shirt",
			Type:       "good",
			Attributes: []string{"size", "gender"},
		},
	}
}

func fixtureSKUs() []models.SKU {
	return []models.SKU{
		{
			ID:         "increment-03",
			ProductID:  "increment",
			Price:      399,
			Currency:   "usd",
			Attributes: map[string]string{"issue": "Issue #3 “Development”"},
			Inventory:  &models.Inventory{Type: "infinite"},
		},
		{
			ID:         "shirt-small-woman",
			ProductID:  "shirt",
			Price:      999,
			Currency:   "usd",
			Attributes: map[string]string{"size": "Small Standard", "gender": "Woman"},
			Inventory:  &models.Inventory{Type: "infinite"},
		},
		{
			ID:         "pins-collector",
			ProductID:  "pins",
			Price:      799,
			Currency:   "usd",
			Attributes: map[string]string{"set": "Collector Set"},
			Inventory:  &models.Inventory{Type: "finite", Quantity: 500},
		},
	}
}
