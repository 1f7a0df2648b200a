package utils // package utils provides helper functions for token creation and hashing

import (
    "crypto/rand"     // secure random number generation
    "crypto/sha256"   // SHA-256 hashing for refresh tokens
    "encoding/base64" // base64 rendering of refresh tokens
    "encoding/hex"    // hex encoding for refresh token digests
    "errors"          // sentinel error for rejected tokens
    "time"            // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens

    "github.com/amigurumi/storefront/internal/model"
)

// ErrInvalidToken is returned by ParseAccessToken for any token that fails
// verification: bad signature, wrong issuer or audience, expired, or
// malformed claims.  Callers treat all of these identically (401), so the
// parse error detail is deliberately not surfaced.
var ErrInvalidToken = errors.New("invalid access token")

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.  Access tokens are short-lived and presented
// in the Authorization header when calling protected endpoints.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// IdentityClaims is the identity a verified access token asserts.  Every
// service that accepts bearer tokens resolves requests to one of these;
// no service calls back to identity to do so.
type IdentityClaims struct {
    UserID      string // subject: the user's id
    Email       string // email at issuance time
    DisplayName string // display name at issuance time
    Role        string // model.RoleAdmin or model.RoleCustomer
}

// NewAccessToken builds and signs an HS256 JWT for a user.  The JWT carries
// the four identity claims (sub, email, name, role) plus issuer, audience,
// expiration and issued-at.  Validity of the result is determined purely by
// signature and expiry; nothing is stored server-side, so an issued token
// cannot be revoked before it expires.
func NewAccessToken(secret, issuer, audience string, u model.User, ttlMin int) (AccessToken, error) {
    now := time.Now().UTC()
    exp := now.Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub":   u.ID,
        "email": u.Email,
        "name":  u.DisplayName,
        "role":  u.Role,
        "iss":   issuer,
        "aud":   audience,
        "exp":   exp.Unix(),
        "iat":   now.Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies a raw access token against the shared secret,
// issuer and audience, and returns the identity claims it asserts.  The
// triple must match the one used at issuance exactly; services configured
// with a drifted triple reject every token, which is a deployment problem
// rather than a code path this function distinguishes.
func ParseAccessToken(secret, issuer, audience, raw string) (IdentityClaims, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        // Type assert the signing method to HMAC; reject others.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    }, jwt.WithIssuer(issuer), jwt.WithAudience(audience), jwt.WithExpirationRequired())
    if err != nil || !tok.Valid {
        return IdentityClaims{}, ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return IdentityClaims{}, ErrInvalidToken
    }
    id := IdentityClaims{}
    if id.UserID, ok = claims["sub"].(string); !ok || id.UserID == "" {
        return IdentityClaims{}, ErrInvalidToken
    }
    if id.Role, ok = claims["role"].(string); !ok || id.Role == "" {
        return IdentityClaims{}, ErrInvalidToken
    }
    id.Email, _ = claims["email"].(string)
    id.DisplayName, _ = claims["name"].(string)
    return id, nil
}

// NewRefreshToken returns a cryptographically random opaque token.  Refresh
// tokens carry no claims and no expiry; they are only meaningful as keys
// into the identity service's refresh index.  48 bytes of entropy rendered
// as unpadded URL-safe base64.
func NewRefreshToken() (string, error) {
    buf := make([]byte, 48)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashRefreshRaw returns the SHA-256 hash of the raw refresh token as a hex
// string.  Only the hash is kept in the refresh index, so a leaked index
// cannot be replayed to renew sessions.
func HashRefreshRaw(raw string) string {
    sum := sha256.Sum256([]byte(raw))
    return hex.EncodeToString(sum[:])
}
