package main // Entry point for the catalog service

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

	products := repository.NewProductRepo()
	products.SeedDemo() // give the storefront data on first run

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterCatalog(e, handler.NewProductHandler(products), cfg)

	addr := ":" + cfg.CatalogPort
	logger.Info("catalog listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
