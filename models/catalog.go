package models

// Product is a catalog item, read-only from this service's perspective.
type Product struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Type       string   `json:"type,omitempty"`
	Attributes []string `json:"attributes,omitempty"`
}

// SKU is a purchasable variant of a product with a concrete price.
type SKU struct {
	ID         string            `json:"id"`
	ProductID  string            `json:"product"`
	Price      int64             `json:"price"` // minor units
	Currency   string            `json:"currency"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Inventory  *Inventory        `json:"inventory,omitempty"`
}

// Inventory describes how stock is tracked for a SKU.
type Inventory struct {
	Type     string `json:"type"` // "finite" or "infinite"
	Quantity int64  `json:"quantity,omitempty"`
}

// ShippingOption is one entry of the fixed shipping cost table.
type ShippingOption struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Detail string `json:"detail"`
	Amount int64  `json:"amount"`
}
