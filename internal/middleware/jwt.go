package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/amigurumi/storefront/internal/utils" // shared access-token verification
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's identity claims into the request context.  The
// secret, issuer and audience must match the triple the identity service
// used when issuing tokens; every service applies this check on its own,
// with no callback to identity — possession of a validly signed, unexpired
// token is the whole proof.  Handlers behind this middleware read the
// authenticated identity via `c.Get("user_id")`, `c.Get("email")`,
// `c.Get("display_name")` and `c.Get("role")`.
func JWTAuth(secret, issuer, audience string) echo.MiddlewareFunc {
    // The outer function returns a middleware function.  Echo executes this
    // once when registering the middleware.
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        // The returned handler is invoked for each incoming HTTP request.
        return func(c echo.Context) error {
            // Read the Authorization header.  A valid header should start
            // with "Bearer " followed by the JWT.  If it doesn't, respond
            // with 401 Unauthorized indicating that authentication is
            // required.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            // Remove the "Bearer " prefix to obtain the raw token string.
            raw := strings.TrimPrefix(auth, "Bearer ")

            // Verify signature, issuer, audience and expiry in one place.
            // Any failure collapses to a single 401; the caller learns
            // nothing about which check rejected the token.
            claims, err := utils.ParseAccessToken(secret, issuer, audience, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            // Store the identity claims in the context so handlers and
            // downstream middleware can access them via c.Get().
            c.Set("user_id", claims.UserID)
            c.Set("email", claims.Email)
            c.Set("display_name", claims.DisplayName)
            c.Set("role", claims.Role)
            // Call the next handler in the chain and return its result.
            return next(c)
        }
    }
}
