package models

// Request bodies for the HTTP surface. Shape validation happens here, at the
// boundary, through gin's binding tags; nothing unvalidated reaches the
// reconciler.

type OrderRequest struct {
	Currency string   `json:"currency" binding:"required"`
	Items    []Item   `json:"items" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	Shipping Shipping `json:"shipping" binding:"required"`
}

type PayRequest struct {
	Source Source `json:"source" binding:"required"`
}

type IntentRequest struct {
	Currency string `json:"currency" binding:"required"`
	Items    []Item `json:"items"`
}

type ShippingOptionRef struct {
	ID string `json:"id" binding:"required"`
}

type ShippingChangeRequest struct {
	Items          []Item            `json:"items"`
	ShippingOption ShippingOptionRef `json:"shippingOption" binding:"required"`
}

type UpdateCurrencyRequest struct {
	Currency       string   `json:"currency" binding:"required"`
	PaymentMethods []string `json:"payment_methods" binding:"required"`
}
