package main // Entry point for the order service

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/amigurumi/storefront/internal/config"
	"github.com/amigurumi/storefront/internal/handler"
	"github.com/amigurumi/storefront/internal/repository"
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

	orders := repository.NewOrderRepo()

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterOrders(e, handler.NewOrderHandler(orders), cfg)

	addr := ":" + cfg.OrdersPort
	logger.Info("orders listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
