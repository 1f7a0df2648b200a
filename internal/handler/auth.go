package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/amigurumi/storefront/internal/config"
	"github.com/amigurumi/storefront/internal/model"
	"github.com/amigurumi/storefront/internal/repository"
	"github.com/amigurumi/storefront/internal/utils"
)

// AuthHandler bundles dependencies for the session endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
	Log    *zap.Logger
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Log: log}
}

// ----- DTOs -----

type registerReq struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	IsAdmin     bool   `json:"isAdmin"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

type AuthResp struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAtUTC time.Time `json:"expiresAtUtc"`
}
type MeResp struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

// issueTokens mints a fresh access token for the user's current record and
// selects the refresh token: the supplied one verbatim in the refresh flow,
// a brand-new opaque token on register/login.  The refresh token is tracked
// in the index by hash; the access token is never stored server-side.
func (h *AuthHandler) issueTokens(u model.User, existingRefresh string) (AuthResp, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, h.Cfg.JWTIssuer, h.Cfg.JWTAudience, u, h.Cfg.AccessTTLMin)
	if err != nil {
		return AuthResp{}, err
	}
	refresh := existingRefresh
	if refresh == "" {
		if refresh, err = utils.NewRefreshToken(); err != nil {
			return AuthResp{}, err
		}
	}
	h.Tokens.Track(u.Email, utils.HashRefreshRaw(refresh))
	return AuthResp{AccessToken: access.Token, RefreshToken: refresh, ExpiresAtUTC: access.Exp}, nil
}

// Register: create user and return tokens immediately; registration
// implicitly logs the user in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = repository.NormalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	u, err := h.Users.Create(req.Email, req.Password, req.DisplayName, req.IsAdmin, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		h.Log.Error("create user failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	resp, err := h.issueTokens(u, "")
	if err != nil {
		h.Log.Error("issue tokens failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Login: verify the password and return a new token pair.  Unknown email
// and bad password produce the same 401 so the response does not leak
// which emails are registered.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = repository.NormalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	u, err := h.Users.GetByEmail(req.Email)
	if err != nil || !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	resp, err := h.issueTokens(u, "")
	if err != nil {
		h.Log.Error("issue tokens failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Refresh: exchange a tracked refresh token for a new access token bound to
// the current state of the owning user record.  The refresh token itself is
// never rotated; the client keeps presenting the same one.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refreshToken required"})
	}
	raw := strings.TrimSpace(req.RefreshToken)

	email, err := h.Tokens.Lookup(utils.HashRefreshRaw(raw))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	u, err := h.Users.GetByEmail(email)
	if err != nil {
		// Index entry survived but the user is gone; treat like an
		// unknown token and force a full re-login.
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}

	resp, err := h.issueTokens(u, raw)
	if err != nil {
		h.Log.Error("issue tokens failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout supports two modes: a refresh token in the body revokes that one
// session, a bearer access token with no body token revokes every session
// of the caller.  Outstanding access tokens stay valid until they expire;
// revocation here only stops future renewals.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	_ = c.Bind(&req)
	refreshToken := strings.TrimSpace(req.RefreshToken)

	if refreshToken != "" {
		if err := h.Tokens.RevokeByHash(utils.HashRefreshRaw(refreshToken)); err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		return c.NoContent(http.StatusNoContent)
	}

	// No refresh token supplied; fall back to the Authorization header and
	// revoke all sessions of the authenticated user.  The token is parsed
	// here directly so this endpoint works without the JWT middleware.
	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		claims, err := utils.ParseAccessToken(h.Cfg.JWTSecret, h.Cfg.JWTIssuer, h.Cfg.JWTAudience, strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		u, err := h.Users.GetByID(claims.UserID)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		h.Tokens.RevokeAllForEmail(u.Email)
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusBadRequest, echo.Map{"error": "provide Authorization header or refreshToken"})
}

// Me: resolve the access token's subject to a live user record and return
// the profile.  A token can outlive its user (process restart lost the
// store), in which case the claim no longer resolves and the caller must
// re-register.
func (h *AuthHandler) Me(c echo.Context) error {
	id, _ := c.Get("user_id").(string)
	u, err := h.Users.GetByID(id)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown user"})
	}
	return c.JSON(http.StatusOK, MeResp{UserID: u.ID, Email: u.Email, DisplayName: u.DisplayName, Role: u.Role})
}
