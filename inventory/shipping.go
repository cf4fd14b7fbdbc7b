package inventory

import (
	"fmt"

	"checkout-service/models"
)

var shippingOptions = []models.ShippingOption{
	{
		ID:     "free",
		Label:  "Free Shipping",
		Detail: "Delivery within 5 days",
		Amount: 0,
	},
	{
		ID:     "express",
		Label:  "Express Shipping",
		Detail: "Next day delivery",
		Amount: 500,
	},
}

// ShippingOptions returns the fixed shipping cost table offered at checkout.
func ShippingOptions() []models.ShippingOption {
	out := make([]models.ShippingOption, len(shippingOptions))
	copy(out, shippingOptions)
	return out
}

// ShippingCost looks up the cost (minor units) of a shipping option by id.
func ShippingCost(id string) (int64, error) {
	for _, opt := range shippingOptions {
		if opt.ID == id {
			return opt.Amount, nil
		}
	}
	return 0, fmt.Errorf("unknown shipping option %q", id)
}
