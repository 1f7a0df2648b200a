package main // Entry point for the API gateway

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/amigurumi/storefront/internal/config"
	"github.com/amigurumi/storefront/internal/gateway"
	"github.com/amigurumi/storefront/internal/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterGateway(e, gateway.NewProxy(logger), cfg)

	addr := ":" + cfg.GatewayPort
	logger.Info("gateway listening",
		zap.String("addr", addr),
		zap.String("identity", cfg.IdentityURL),
		zap.String("catalog", cfg.CatalogURL),
		zap.String("orders", cfg.OrdersURL))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
