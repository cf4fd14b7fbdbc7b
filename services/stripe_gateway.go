package services

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
	"go.uber.org/zap"

	"checkout-service/config"
	"checkout-service/models"
)

// Metadata keys used on gateway objects to link them back to our records.
const (
	metaStatus        = "status"
	metaOrder         = "order"
	metaPaymentIntent = "paymentIntent"
	metaIntentID      = "intent_id"
	metaIntentSecret  = "intent_secret"
)

// StripeGateway implements Gateway against the Stripe API.
type StripeGateway struct {
	sc             *client.API
	paymentMethods []string
	logger         *zap.Logger
}

// NewStripeGateway builds a gateway client from the loaded configuration. The
// secret key is bound to this client instance rather than to package state.
func NewStripeGateway(cfg *config.Config, logger *zap.Logger) *StripeGateway {
	return &StripeGateway{
		sc:             client.New(cfg.StripeSecretKey, nil),
		paymentMethods: cfg.PaymentMethods,
		logger:         logger,
	}
}

// CreateOrder creates the order record and a payment intent representing the
// customer's intent to pay it, then stows the intent's id and client secret on
// the order so the frontend can confirm it.
func (g *StripeGateway) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	params := &stripe.OrderParams{
		Params:   stripe.Params{Context: ctx},
		Currency: stripe.String(req.Currency),
		Email:    stripe.String(req.Email),
		Shipping: &stripe.ShippingParams{
			Name: stripe.String(req.Shipping.Name),
			Address: &stripe.AddressParams{
				Line1:      stripe.String(req.Shipping.Address.Line1),
				Line2:      stripe.String(req.Shipping.Address.Line2),
				City:       stripe.String(req.Shipping.Address.City),
				State:      stripe.String(req.Shipping.Address.State),
				PostalCode: stripe.String(req.Shipping.Address.PostalCode),
				Country:    stripe.String(req.Shipping.Address.Country),
			},
		},
	}
	for _, it := range req.Items {
		params.Items = append(params.Items, &stripe.OrderItemParams{
			Parent:   stripe.String(it.Parent),
			Quantity: stripe.Int64(it.Quantity),
			Type:     stripe.String("sku"),
		})
	}
	params.AddMetadata(metaStatus, string(models.OrderStatusCreated))

	o, err := g.sc.Orders.New(params)
	if err != nil {
		return nil, err
	}

	pi, err := g.CreatePaymentIntent(ctx, o.Amount, string(o.Currency), o.ID)
	if err != nil {
		return nil, err
	}

	upd := &stripe.OrderUpdateParams{Params: stripe.Params{Context: ctx}}
	upd.AddMetadata(metaIntentID, pi.ID)
	upd.AddMetadata(metaIntentSecret, pi.ClientSecret)
	o, err = g.sc.Orders.Update(o.ID, upd)
	if err != nil {
		return nil, err
	}

	return orderFromStripe(o), nil
}

func (g *StripeGateway) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	o, err := g.sc.Orders.Get(id, &stripe.OrderParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		return nil, err
	}
	return orderFromStripe(o), nil
}

func (g *StripeGateway) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	params := &stripe.OrderUpdateParams{Params: stripe.Params{Context: ctx}}
	params.AddMetadata(metaStatus, string(status))
	_, err := g.sc.Orders.Update(id, params)
	return err
}

func (g *StripeGateway) CreateCharge(ctx context.Context, req ChargeRequest) (*models.Charge, error) {
	params := &stripe.ChargeParams{
		Params: stripe.Params{
			Context:        ctx,
			IdempotencyKey: stripe.String(req.IdempotencyKey),
		},
		Amount:       stripe.Int64(req.Amount),
		Currency:     stripe.String(req.Currency),
		ReceiptEmail: stripe.String(req.ReceiptEmail),
	}
	if err := params.SetSource(req.SourceID); err != nil {
		return nil, err
	}

	ch, err := g.sc.Charges.New(params)
	if err != nil {
		return nil, err
	}
	return &models.Charge{ID: ch.ID, Status: models.ChargeStatus(ch.Status)}, nil
}

// CreateThreeDSecureSource wraps a card source in a 3-D-Secure source for the
// given order, carrying the order link forward in metadata.
func (g *StripeGateway) CreateThreeDSecureSource(ctx context.Context, src models.Source, order *models.Order) (*models.Source, error) {
	params := &stripe.SourceObjectParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(order.Amount),
		Currency: stripe.String(order.Currency),
		Type:     stripe.String("three_d_secure"),
		TypeData: map[string]string{"card": src.ID},
	}
	params.AddMetadata(metaOrder, order.ID)

	out, err := g.sc.Sources.New(params)
	if err != nil {
		return nil, err
	}
	return sourceFromStripe(out), nil
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, amount int64, currency string, orderID string) (*models.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice(g.paymentMethods),
	}
	if orderID != "" {
		params.AddMetadata(metaOrder, orderID)
	}

	pi, err := g.sc.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}
	return intentFromStripe(pi), nil
}

func (g *StripeGateway) GetPaymentIntent(ctx context.Context, id string) (*models.PaymentIntent, error) {
	pi, err := g.sc.PaymentIntents.Get(id, &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		return nil, err
	}
	return intentFromStripe(pi), nil
}

func (g *StripeGateway) UpdatePaymentIntentAmount(ctx context.Context, id string, amount int64) (*models.PaymentIntent, error) {
	pi, err := g.sc.PaymentIntents.Update(id, &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
		Amount: stripe.Int64(amount),
	})
	if err != nil {
		return nil, err
	}
	return intentFromStripe(pi), nil
}

func (g *StripeGateway) UpdatePaymentIntentCurrency(ctx context.Context, id, currency string, paymentMethods []string) (*models.PaymentIntent, error) {
	pi, err := g.sc.PaymentIntents.Update(id, &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice(paymentMethods),
	})
	if err != nil {
		return nil, err
	}
	return intentFromStripe(pi), nil
}

// ConfirmPaymentIntent confirms the intent with a chargeable source. Stripe
// accepts source ids wherever a payment method id is expected.
func (g *StripeGateway) ConfirmPaymentIntent(ctx context.Context, id, sourceID string) (*models.PaymentIntent, error) {
	pi, err := g.sc.PaymentIntents.Confirm(id, &stripe.PaymentIntentConfirmParams{
		Params:        stripe.Params{Context: ctx},
		PaymentMethod: stripe.String(sourceID),
	})
	if err != nil {
		return nil, err
	}
	return intentFromStripe(pi), nil
}

func (g *StripeGateway) CancelPaymentIntent(ctx context.Context, id string) (*models.PaymentIntent, error) {
	pi, err := g.sc.PaymentIntents.Cancel(id, &stripe.PaymentIntentCancelParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		return nil, err
	}
	return intentFromStripe(pi), nil
}

func (g *StripeGateway) ListProducts(ctx context.Context) ([]models.Product, error) {
	params := &stripe.ProductListParams{
		ListParams: stripe.ListParams{Context: ctx, Limit: stripe.Int64(3)},
	}

	var out []models.Product
	it := g.sc.Products.List(params)
	for it.Next() {
		out = append(out, *productFromStripe(it.Product()))
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *StripeGateway) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, err := g.sc.Products.Get(id, &stripe.ProductParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		return nil, err
	}
	return productFromStripe(p), nil
}

// ListSKUs lists all SKUs, or only the given product's when productID is set.
func (g *StripeGateway) ListSKUs(ctx context.Context, productID string) ([]models.SKU, error) {
	params := &stripe.SKUListParams{
		ListParams: stripe.ListParams{Context: ctx},
	}
	if productID != "" {
		params.Product = stripe.String(productID)
	}

	var out []models.SKU
	it := g.sc.Skus.List(params)
	for it.Next() {
		out = append(out, *skuFromStripe(it.SKU()))
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *StripeGateway) CreateProduct(ctx context.Context, p models.Product) error {
	params := &stripe.ProductParams{
		Params: stripe.Params{Context: ctx},
		ID:     stripe.String(p.ID),
		Name:   stripe.String(p.Name),
		Type:   stripe.String(p.Type),
	}
	for _, attr := range p.Attributes {
		params.Attributes = append(params.Attributes, stripe.String(attr))
	}
	_, err := g.sc.Products.New(params)
	return err
}

func (g *StripeGateway) CreateSKU(ctx context.Context, s models.SKU) error {
	params := &stripe.SKUParams{
		Params:     stripe.Params{Context: ctx},
		ID:         stripe.String(s.ID),
		Product:    stripe.String(s.ProductID),
		Price:      stripe.Int64(s.Price),
		Currency:   stripe.String(s.Currency),
		Attributes: s.Attributes,
	}
	if s.Inventory != nil {
		params.Inventory = &stripe.InventoryParams{Type: stripe.String(s.Inventory.Type)}
		if s.Inventory.Quantity > 0 {
			params.Inventory.Quantity = stripe.Int64(s.Inventory.Quantity)
		}
	}
	_, err := g.sc.Skus.New(params)
	return err
}

// IsCardDeclined reports whether the gateway rejected a charge for a
// card-decline-class reason.
func IsCardDeclined(err error) bool {
	var stripeErr *stripe.Error
	return errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard
}

// IsAlreadyExists reports whether a create call failed because the resource id
// is already taken; the fixture seeder treats this as success.
func IsAlreadyExists(err error) bool {
	var stripeErr *stripe.Error
	return errors.As(err, &stripeErr) && stripeErr.Code == "resource_already_exists"
}

// IsNotFound reports whether the gateway could not find the referenced
// resource.
func IsNotFound(err error) bool {
	var stripeErr *stripe.Error
	return errors.As(err, &stripeErr) && stripeErr.Code == "resource_missing"
}

func orderFromStripe(o *stripe.Order) *models.Order {
	out := &models.Order{
		ID:              o.ID,
		Amount:          o.Amount,
		Currency:        string(o.Currency),
		Email:           o.Email,
		Status:          models.OrderStatus(o.Metadata[metaStatus]),
		PaymentIntentID: o.Metadata[metaIntentID],
		ClientSecret:    o.Metadata[metaIntentSecret],
	}
	for _, it := range o.Items {
		if it.Type == "sku" {
			out.Items = append(out.Items, models.Item{Parent: it.Parent.ID, Quantity: it.Quantity})
		}
	}
	if o.Shipping != nil && o.Shipping.Address != nil {
		out.Shipping = &models.Shipping{
			Name:  o.Shipping.Name,
			Phone: o.Shipping.Phone,
			Address: models.Address{
				Line1:      o.Shipping.Address.Line1,
				Line2:      o.Shipping.Address.Line2,
				City:       o.Shipping.Address.City,
				State:      o.Shipping.Address.State,
				PostalCode: o.Shipping.Address.PostalCode,
				Country:    o.Shipping.Address.Country,
			},
		}
	}
	return out
}

func sourceFromStripe(s *stripe.Source) *models.Source {
	out := &models.Source{
		ID:              s.ID,
		Type:            s.Type,
		Status:          models.SourceStatus(s.Status),
		Livemode:        s.Livemode,
		OrderID:         s.Metadata[metaOrder],
		PaymentIntentID: s.Metadata[metaPaymentIntent],
	}
	if s.Type == "card" {
		if v, ok := s.TypeData["three_d_secure"].(string); ok {
			out.Card = &models.Card{ThreeDSecure: v}
		}
	}
	return out
}

func intentFromStripe(pi *stripe.PaymentIntent) *models.PaymentIntent {
	out := &models.PaymentIntent{
		ID:           pi.ID,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       models.IntentStatus(pi.Status),
		ClientSecret: pi.ClientSecret,
		OrderID:      pi.Metadata[metaOrder],
	}
	if pi.LastPaymentError != nil {
		out.LastPaymentError = pi.LastPaymentError.Msg
	}
	return out
}

func productFromStripe(p *stripe.Product) *models.Product {
	return &models.Product{
		ID:         p.ID,
		Name:       p.Name,
		Type:       string(p.Type),
		Attributes: p.Attributes,
	}
}

func skuFromStripe(s *stripe.SKU) *models.SKU {
	out := &models.SKU{
		ID:         s.ID,
		Price:      s.Price,
		Currency:   string(s.Currency),
		Attributes: s.Attributes,
	}
	if s.Product != nil {
		out.ProductID = s.Product.ID
	}
	return out
}
