package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"checkout-service/config"
	"checkout-service/controllers"
	"checkout-service/inventory"
	"checkout-service/middleware"
	"checkout-service/reconciler"
	"checkout-service/routes"
	"checkout-service/services"
	"checkout-service/setup"
)

func main() {
	// Load .env if present; in deployed environments variables come from the
	// runtime directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("[CheckoutService] ❌ Failed to load config:", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("[CheckoutService] ❌ Failed to initialize logger:", err)
	}
	defer logger.Sync()

	gateway := services.NewStripeGateway(cfg, logger)
	catalog := inventory.NewCatalog(gateway, logger)
	seeder := setup.NewSeeder(gateway, logger)
	rec := reconciler.New(gateway, logger)
	parser := services.NewWebhookParser(cfg.StripeWebhookSecret)

	cc := controllers.NewConfigController(cfg)
	pc := controllers.NewProductController(catalog, seeder, logger)
	oc := controllers.NewOrderController(gateway, rec, logger)
	ic := controllers.NewPaymentIntentController(gateway, catalog, logger)
	wc := controllers.NewWebhookController(parser, rec, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))

	routes.RegisterCheckoutRoutes(r, cc, pc, oc, ic, wc)

	logger.Info("checkout service starting",
		zap.String("port", cfg.Port),
		zap.String("stripe_api_version", cfg.StripeAPIVersion),
	)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("[CheckoutService] ❌ Server failed:", err)
	}
}
