// Package middleware carries the session gate: per-request authentication
// resolution and the public/protected redirect rules.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tracklet-app/tracklet/internal/supabase"
)

// Session credential cookies, written by the auth handlers and rotated
// transparently by the gate.
const (
	AccessTokenCookie  = "sb-access-token"
	RefreshTokenCookie = "sb-refresh-token"
)

// refreshCookieMaxAge outlives the access token so an expired session can
// still be refreshed.
const refreshCookieMaxAge = 30 * 24 * 60 * 60

// userIDKey is the gin context key holding the resolved user id.
const userIDKey = "sessionUserID"

const (
	loginPath     = "/auth/login"
	dashboardPath = "/dashboard"
	authPrefix    = "/auth"
)

// protectedPrefixes require a signed-in user.
var protectedPrefixes = []string{"/dashboard", "/applications", "/analytics", "/feedback"}

// TokenValidator is the slice of the auth service the gate consumes.
type TokenValidator interface {
	GetUser(ctx context.Context, accessToken string) (*supabase.User, error)
	RefreshSession(ctx context.Context, refreshToken string) (*supabase.Session, error)
}

// SessionGate decides, for every request, whether to forward it or redirect
// based on path and authentication state.
type SessionGate struct {
	validator     TokenValidator
	log           *zap.Logger
	secureCookies bool
}

func NewSessionGate(validator TokenValidator, log *zap.Logger, secureCookies bool) *SessionGate {
	return &SessionGate{
		validator:     validator,
		log:           log,
		secureCookies: secureCookies,
	}
}

// Handler returns the gin middleware.
//
// Unauthenticated requests to protected page prefixes are redirected to the
// login page; authenticated requests to the root or auth pages are
// redirected to the dashboard. Everything else is forwarded, with any
// refreshed credential already written onto the response. Any validation
// failure counts as unauthenticated: protected content is never served on
// ambiguous auth state.
func (g *SessionGate) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := g.resolveUser(c)
		path := c.Request.URL.Path

		if user == nil && hasProtectedPrefix(path) {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		if user != nil && (path == "/" || strings.HasPrefix(path, authPrefix)) {
			c.Redirect(http.StatusSeeOther, dashboardPath)
			c.Abort()
			return
		}

		if user != nil {
			c.Set(userIDKey, user.ID)
		}
		c.Next()
	}
}

// resolveUser validates the session credential. An access token that no
// longer validates falls back to the refresh token; a successful refresh
// rotates both cookies on the response.
func (g *SessionGate) resolveUser(c *gin.Context) *supabase.User {
	ctx := c.Request.Context()

	if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
		user, err := g.validator.GetUser(ctx, token)
		if err == nil {
			return user
		}
		g.log.Debug("access token rejected", zap.Error(err))
	}

	refresh, err := c.Cookie(RefreshTokenCookie)
	if err != nil || refresh == "" {
		return nil
	}

	session, err := g.validator.RefreshSession(ctx, refresh)
	if err != nil || session.User == nil {
		g.log.Debug("session refresh failed", zap.Error(err))
		return nil
	}

	SetSessionCookies(c, session, g.secureCookies)
	return session.User
}

func hasProtectedPrefix(path string) bool {
	for _, p := range protectedPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// CurrentUserID returns the resolved user id for the request, or "" when the
// request is unauthenticated.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// SetSessionCookies writes the session token pair onto the response.
func SetSessionCookies(c *gin.Context, session *supabase.Session, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, session.AccessToken, session.ExpiresIn, "/", "", secure, true)
	c.SetCookie(RefreshTokenCookie, session.RefreshToken, refreshCookieMaxAge, "/", "", secure, true)
}

// ClearSessionCookies removes the session cookies.
func ClearSessionCookies(c *gin.Context, secure bool) {
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", secure, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", secure, true)
}
