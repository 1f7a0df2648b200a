package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values shared by the storefront
// services.  Each field corresponds to an environment variable.  The JWT
// triple (secret, issuer, audience) must be identical across the identity,
// catalog and order services: it is the only trust-establishment mechanism
// between them, so any drift makes downstream services reject otherwise
// valid tokens.
type Config struct {
    Env          string // application environment (e.g. "dev", "prod")
    JWTSecret    string // symmetric key used to sign and verify access tokens
    JWTIssuer    string // issuer claim stamped into and required of every access token
    JWTAudience  string // audience claim stamped into and required of every access token
    AccessTTLMin int    // access token time-to-live in minutes
    BcryptCost   int    // bcrypt cost for password hashing

    IdentityPort string // HTTP port for the identity service
    CatalogPort  string // HTTP port for the catalog service
    OrdersPort   string // HTTP port for the order service
    GatewayPort  string // HTTP port for the API gateway

    IdentityURL string // gateway upstream base URL for identity
    CatalogURL  string // gateway upstream base URL for catalog
    OrdersURL   string // gateway upstream base URL for orders
}

// defaultDevSecret keeps the stack runnable out of the box.  Anything
// beyond a local demo must override JWT_SECRET everywhere at once.
const defaultDevSecret = "please-change-me-super-secret"

// Load reads configuration values from environment variables and returns a
// Config.  Every value falls back to a default suitable for running all
// four services locally; integers that fail to parse exit with a fatal
// log message.
func Load() Config {
    return Config{
        Env:          envOr("APP_ENV", "dev"),                        // environment (dev/test/prod)
        JWTSecret:    envOr("JWT_SECRET", defaultDevSecret),          // secret used for signing JWTs
        JWTIssuer:    envOr("JWT_ISSUER", "amigurumi.identity"),      // issuer claim
        JWTAudience:  envOr("JWT_AUDIENCE", "amigurumi.clients"),     // audience claim
        AccessTTLMin: envOrInt("ACCESS_TOKEN_TTL_MIN", 60),           // TTL for access tokens in minutes
        BcryptCost:   envOrInt("BCRYPT_COST", 10),                    // bcrypt cost factor
        IdentityPort: envOr("IDENTITY_PORT", "5001"),                 // identity listen port
        CatalogPort:  envOr("CATALOG_PORT", "5002"),                  // catalog listen port
        OrdersPort:   envOr("ORDERS_PORT", "5003"),                   // orders listen port
        GatewayPort:  envOr("GATEWAY_PORT", "8080"),                  // gateway listen port
        IdentityURL:  envOr("IDENTITY_URL", "http://localhost:5001"), // identity upstream for the gateway
        CatalogURL:   envOr("CATALOG_URL", "http://localhost:5002"),  // catalog upstream for the gateway
        OrdersURL:    envOr("ORDERS_URL", "http://localhost:5003"),   // orders upstream for the gateway
    }
}

// envOr retrieves an optional environment variable, returning def when the
// variable is unset or empty.
func envOr(key, def string) string {
    if v, ok := os.LookupEnv(key); ok && v != "" {
        return v
    }
    return def
}

// envOrInt is like envOr but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func envOrInt(key string, def int) int {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        return def
    }
    n, err := strconv.Atoi(v)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, v)
    }
    return n
}
