package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/amigurumi/storefront/internal/config"
	"github.com/amigurumi/storefront/internal/handler"
	"github.com/amigurumi/storefront/internal/model"
	"github.com/amigurumi/storefront/internal/repository"
	"github.com/amigurumi/storefront/internal/router"
	"github.com/amigurumi/storefront/internal/utils"
)

func testConfig() config.Config {
	return config.Config{
		Env:          "test",
		JWTSecret:    "test-signing-secret",
		JWTIssuer:    "amigurumi.identity",
		JWTAudience:  "amigurumi.clients",
		AccessTTLMin: 60,
		BcryptCost:   bcrypt.MinCost,
	}
}

// identityEnv wires the identity service exactly as cmd/identity does,
// minus the listener.
type identityEnv struct {
	e      *echo.Echo
	users  *repository.UserRepo
	tokens *repository.TokenRepo
	cfg    config.Config
}

func newIdentityEnv() *identityEnv {
	cfg := testConfig()
	users := repository.NewUserRepo()
	tokens := repository.NewTokenRepo()
	e := echo.New()
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens, zap.NewNop()), cfg)
	return &identityEnv{e: e, users: users, tokens: tokens, cfg: cfg}
}

// doJSON serves a request against an echo instance and returns the
// recorder.  A non-empty bearer is attached as an Authorization header.
func doJSON(t *testing.T, e *echo.Echo, method, path string, body any, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// mintToken signs an access token directly, the way the identity service
// would, so catalog and order tests do not need a running identity env.
func mintToken(t *testing.T, cfg config.Config, u model.User) string {
	t.Helper()
	tok, err := utils.NewAccessToken(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, u, cfg.AccessTTLMin)
	require.NoError(t, err)
	return tok.Token
}

// register drives the real endpoint and returns the token triple.
func (env *identityEnv) register(t *testing.T, email, password, displayName string, isAdmin bool) handler.AuthResp {
	t.Helper()
	rec := doJSON(t, env.e, http.MethodPost, "/auth/register", map[string]any{
		"email":       email,
		"password":    password,
		"displayName": displayName,
		"isAdmin":     isAdmin,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody[handler.AuthResp](t, rec)
}

func (env *identityEnv) login(t *testing.T, email, password string) handler.AuthResp {
	t.Helper()
	rec := doJSON(t, env.e, http.MethodPost, "/auth/login", map[string]any{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeBody[handler.AuthResp](t, rec)
}
