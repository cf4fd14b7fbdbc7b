package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds everything the service reads from the environment. It is built
// once in main and passed into every constructor; nothing mutates it afterwards.
type Config struct {
	Port                 string
	StripeSecretKey      string
	StripePublishableKey string
	StripeWebhookSecret  string
	StripeAccountCountry string
	StripeAPIVersion     string
	Country              string
	Currency             string
	PaymentMethods       []string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:                 getEnv("PORT", "4567"),
		StripeSecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
		StripePublishableKey: os.Getenv("STRIPE_PUBLISHABLE_KEY"),
		StripeWebhookSecret:  os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripeAccountCountry: getEnv("STRIPE_ACCOUNT_COUNTRY", "US"),
		StripeAPIVersion:     getEnv("STRIPE_API_VERSION", "2019-03-14"),
		Country:              "US",
		Currency:             "eur",
		PaymentMethods:       parsePaymentMethods(os.Getenv("PAYMENT_METHODS")),
	}

	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("missing required environment variable STRIPE_SECRET_KEY")
	}

	return cfg, nil
}

// parsePaymentMethods splits the PAYMENT_METHODS value, which is comma-space
// separated ("card, ideal, sepa_debit"). An empty value means card only.
func parsePaymentMethods(raw string) []string {
	if raw == "" {
		return []string{"card"}
	}
	return strings.Split(raw, ", ")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
