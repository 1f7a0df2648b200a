package handler_test

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amigurumi/storefront/internal/handler"
	"github.com/amigurumi/storefront/internal/model"
	"github.com/amigurumi/storefront/internal/utils"
)

func TestRegisterIssuesTokens(t *testing.T) {
	env := newIdentityEnv()

	resp := env.register(t, " Ann@X.com ", "pw1", "Ann", false)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Len(t, resp.RefreshToken, 64)
	assert.WithinDuration(t, time.Now().UTC().Add(60*time.Minute), resp.ExpiresAtUTC, 5*time.Second)

	claims, err := utils.ParseAccessToken(env.cfg.JWTSecret, env.cfg.JWTIssuer, env.cfg.JWTAudience, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", claims.Email, "claims carry the normalized email")
	assert.Equal(t, "Ann", claims.DisplayName)
	assert.True(t, env.users.Exists("ann@x.com"))
}

func TestRegisterRoleClaims(t *testing.T) {
	env := newIdentityEnv()

	customer := env.register(t, "a@x.com", "pw1", "Ann", false)
	admin := env.register(t, "b@x.com", "pw2", "Bo", true)

	c1, err := utils.ParseAccessToken(env.cfg.JWTSecret, env.cfg.JWTIssuer, env.cfg.JWTAudience, customer.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, c1.Role)

	c2, err := utils.ParseAccessToken(env.cfg.JWTSecret, env.cfg.JWTIssuer, env.cfg.JWTAudience, admin.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, c2.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newIdentityEnv()
	env.register(t, "ann@x.com", "pw1", "Ann", false)

	rec := doJSON(t, env.e, http.MethodPost, "/auth/register", map[string]any{
		"email": "ANN@X.com", "password": "other", "displayName": "Imposter",
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	env := newIdentityEnv()
	for _, body := range []map[string]any{
		{"password": "pw"},
		{"email": "ann@x.com"},
		{"email": "  ", "password": "pw"},
	} {
		rec := doJSON(t, env.e, http.MethodPost, "/auth/register", body, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestLogin(t *testing.T) {
	env := newIdentityEnv()
	env.register(t, "ann@x.com", "pw1", "Ann", false)

	resp := env.login(t, "Ann@X.com", "pw1")
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newIdentityEnv()
	env.register(t, "ann@x.com", "pw1", "Ann", false)

	// Wrong password for an existing email is 401, never 409 or 404.
	rec := doJSON(t, env.e, http.MethodPost, "/auth/login", map[string]any{
		"email": "ann@x.com", "password": "pw2",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newIdentityEnv()
	rec := doJSON(t, env.e, http.MethodPost, "/auth/login", map[string]any{
		"email": "ghost@x.com", "password": "pw",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshKeepsTokenMintsNewAccess(t *testing.T) {
	env := newIdentityEnv()
	first := env.register(t, "ann@x.com", "pw1", "Ann", false)

	// The iat claim has second granularity; step past it so the new
	// access token is guaranteed to differ.
	time.Sleep(1100 * time.Millisecond)

	rec := doJSON(t, env.e, http.MethodPost, "/auth/refresh", map[string]any{
		"refreshToken": first.RefreshToken,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	renewed := decodeBody[handler.AuthResp](t, rec)

	assert.Equal(t, first.RefreshToken, renewed.RefreshToken, "refresh token is never rotated")
	assert.NotEqual(t, first.AccessToken, renewed.AccessToken)

	_, err := utils.ParseAccessToken(env.cfg.JWTSecret, env.cfg.JWTIssuer, env.cfg.JWTAudience, renewed.AccessToken)
	assert.NoError(t, err)

	// The same refresh token keeps working for subsequent renewals.
	rec = doJSON(t, env.e, http.MethodPost, "/auth/refresh", map[string]any{
		"refreshToken": first.RefreshToken,
	}, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRefreshUnknownToken(t *testing.T) {
	env := newIdentityEnv()
	rec := doJSON(t, env.e, http.MethodPost, "/auth/refresh", map[string]any{
		"refreshToken": "never-issued-random-string",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe(t *testing.T) {
	env := newIdentityEnv()
	resp := env.register(t, "ann@x.com", "pw1", "Ann", false)

	rec := doJSON(t, env.e, http.MethodGet, "/auth/me", nil, resp.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	me := decodeBody[handler.MeResp](t, rec)
	assert.Equal(t, "ann@x.com", me.Email)
	assert.Equal(t, "Ann", me.DisplayName)
	assert.Equal(t, model.RoleCustomer, me.Role)
	assert.NotEmpty(t, me.UserID)
}

func TestMeRejections(t *testing.T) {
	env := newIdentityEnv()

	rec := doJSON(t, env.e, http.MethodGet, "/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, env.e, http.MethodGet, "/auth/me", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A token signed for a user this process has never seen (e.g. the
	// store was lost to a restart) verifies but does not resolve.
	ghost := model.User{ID: "ghost-id", Email: "ghost@x.com", DisplayName: "Ghost", Role: model.RoleCustomer}
	rec = doJSON(t, env.e, http.MethodGet, "/auth/me", nil, mintToken(t, env.cfg, ghost))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutRevokesSingleSession(t *testing.T) {
	env := newIdentityEnv()
	env.register(t, "ann@x.com", "pw1", "Ann", false)
	laptop := env.login(t, "ann@x.com", "pw1")
	phone := env.login(t, "ann@x.com", "pw1")

	rec := doJSON(t, env.e, http.MethodPost, "/auth/logout", map[string]any{
		"refreshToken": laptop.RefreshToken,
	}, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// The logged-out session can no longer renew.
	rec = doJSON(t, env.e, http.MethodPost, "/auth/refresh", map[string]any{
		"refreshToken": laptop.RefreshToken,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The other session is untouched.
	rec = doJSON(t, env.e, http.MethodPost, "/auth/refresh", map[string]any{
		"refreshToken": phone.RefreshToken,
	}, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogoutAllWithBearer(t *testing.T) {
	env := newIdentityEnv()
	reg := env.register(t, "ann@x.com", "pw1", "Ann", false)
	second := env.login(t, "ann@x.com", "pw1")

	rec := doJSON(t, env.e, http.MethodPost, "/auth/logout", nil, reg.AccessToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	for _, token := range []string{reg.RefreshToken, second.RefreshToken} {
		rec = doJSON(t, env.e, http.MethodPost, "/auth/refresh", map[string]any{
			"refreshToken": token,
		}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func TestLogoutWithoutCredentials(t *testing.T) {
	env := newIdentityEnv()
	rec := doJSON(t, env.e, http.MethodPost, "/auth/logout", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, env.e, http.MethodPost, "/auth/logout", map[string]any{
		"refreshToken": "never-issued",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestConcurrentLogins(t *testing.T) {
	env := newIdentityEnv()
	env.register(t, "ann@x.com", "pw1", "Ann", false)

	const n = 8
	var wg sync.WaitGroup
	results := make([]handler.AuthResp, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := doJSON(t, env.e, http.MethodPost, "/auth/login", map[string]any{
				"email": "ann@x.com", "password": "pw1",
			}, "")
			if rec.Code == http.StatusOK {
				results[i] = decodeBody[handler.AuthResp](t, rec)
			}
		}(i)
	}
	wg.Wait()

	// Every login succeeded and produced an independently valid session.
	for _, r := range results {
		require.NotEmpty(t, r.AccessToken)
		_, err := utils.ParseAccessToken(env.cfg.JWTSecret, env.cfg.JWTIssuer, env.cfg.JWTAudience, r.AccessToken)
		assert.NoError(t, err)

		rec := doJSON(t, env.e, http.MethodPost, "/auth/refresh", map[string]any{
			"refreshToken": r.RefreshToken,
		}, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	// n logins plus the registration session.
	assert.Equal(t, n+1, env.tokens.CountForEmail("ann@x.com"))
}
