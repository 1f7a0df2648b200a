package router // package router defines how HTTP routes are registered for each service

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/amigurumi/storefront/internal/config"
	"github.com/amigurumi/storefront/internal/gateway"
	"github.com/amigurumi/storefront/internal/handler"    // import the handlers that implement business logic
	"github.com/amigurumi/storefront/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/amigurumi/storefront/internal/model"
)

// RegisterRoutes registers routes shared by every service on the provided
// Echo instance.  Currently it exposes only a health check, which load
// balancers and monitoring systems use to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the identity service's session endpoints.
// Register, login, refresh and logout do not require an existing session;
// /auth/me sits behind the JWT middleware so the handler can trust the
// claims in the context.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, cfg config.Config) {
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout inspects the Authorization header itself so it stays outside
	// the protected group; a refresh token in the body is enough.
	g.POST("/logout", a.Logout)
	g.GET("/me", a.Me, middleware.JWTAuth(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience))
}

// RegisterCatalog registers the catalog service's endpoints.  Reads are
// public so guests can browse; mutations require a valid token carrying
// the admin role.
func RegisterCatalog(e *echo.Echo, p *handler.ProductHandler, cfg config.Config) {
	e.GET("/products", p.List)
	e.GET("/products/:id", p.Get)

	admin := e.Group("/products")
	admin.Use(middleware.JWTAuth(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("", p.Create)
	admin.PUT("/:id", p.Update)
	admin.DELETE("/:id", p.Delete)
}

// RegisterOrders registers the order service's endpoints.  Every route
// requires a valid token; per-user scoping and the admin override are
// enforced inside the handlers.
func RegisterOrders(e *echo.Echo, o *handler.OrderHandler, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.JWTAuth(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience))
	g.POST("/checkout", o.Checkout)
	g.GET("", o.List)
	g.GET("/:id", o.Get)
}

// RegisterGateway maps the public /api surface onto the three upstream
// services.  Wildcard routes cover the sub-paths; the bare collection
// paths need their own registrations because echo wildcards do not match
// the empty suffix.
func RegisterGateway(e *echo.Echo, p *gateway.Proxy, cfg config.Config) {
	e.Any("/api/auth/*", p.Forward(cfg.IdentityURL, "/auth"))

	e.Any("/api/catalog", p.Forward(cfg.CatalogURL, "/products"))
	e.Any("/api/catalog/*", p.Forward(cfg.CatalogURL, "/products"))

	e.Any("/api/orders", p.Forward(cfg.OrdersURL, "/orders"))
	e.Any("/api/orders/*", p.Forward(cfg.OrdersURL, "/orders"))
}
