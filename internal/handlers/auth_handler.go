package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tracklet-app/tracklet/internal/dtos"
	"github.com/tracklet-app/tracklet/internal/middleware"
	"github.com/tracklet-app/tracklet/internal/store"
	"github.com/tracklet-app/tracklet/internal/supabase"
)

// AuthAPI is the slice of the auth service the handlers consume.
type AuthAPI interface {
	SignInWithPassword(ctx context.Context, email, password string) (*supabase.Session, error)
	SignUp(ctx context.Context, email, password, name string) (*supabase.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// AuthHandler exposes login, sign-up and logout over the auth service.
type AuthHandler struct {
	Auth          AuthAPI
	Stores        *store.Registry
	Log           *zap.Logger
	SecureCookies bool
}

func NewAuthHandler(auth AuthAPI, stores *store.Registry, log *zap.Logger, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		Auth:          auth,
		Stores:        stores,
		Log:           log,
		SecureCookies: secureCookies,
	}
}

// Login is POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	session, err := h.Auth.SignInWithPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	middleware.SetSessionCookies(c, session, h.SecureCookies)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SignUp is POST /api/auth/sign-up. The display name is stored as user
// metadata, which the auth service mirrors into the profiles table.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dtos.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	if _, err := h.Auth.SignUp(c.Request.Context(), req.Email, req.Password, req.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout is POST /api/auth/logout. Revocation is best-effort: the local
// session is always torn down.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.AccessTokenCookie); err == nil && token != "" {
		if err := h.Auth.SignOut(c.Request.Context(), token); err != nil {
			h.Log.Warn("sign-out failed", zap.Error(err))
		}
	}

	if userID := middleware.CurrentUserID(c); userID != "" {
		h.Stores.Drop(userID)
	}
	middleware.ClearSessionCookies(c, h.SecureCookies)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
