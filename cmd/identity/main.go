package main // Entry point for the identity service

import (
	"log"

	"github.com/joho/godotenv"    // .env loading for local runs
	"github.com/labstack/echo/v4" // Echo web framework
	"go.uber.org/zap"             // structured logging

	"github.com/amigurumi/storefront/internal/config"
	"github.com/amigurumi/storefront/internal/handler"
	"github.com/amigurumi/storefront/internal/repository"
	"github.com/amigurumi/storefront/internal/router"
)

func main() {
	_ = godotenv.Load() // best effort; env vars win over .env
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	users := repository.NewUserRepo()
	tokens := repository.NewTokenRepo()
	auth := handler.NewAuthHandler(cfg, users, tokens, logger)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg)

	addr := ":" + cfg.IdentityPort
	logger.Info("identity listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
