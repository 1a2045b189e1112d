package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tracklet-app/tracklet/internal/middleware"
	"github.com/tracklet-app/tracklet/internal/store"
	"github.com/tracklet-app/tracklet/internal/supabase"
)

type fakeAuthAPI struct {
	session *supabase.Session
	err     error

	signOutCalls int
}

func (f *fakeAuthAPI) SignInWithPassword(ctx context.Context, email, password string) (*supabase.Session, error) {
	return f.session, f.err
}

func (f *fakeAuthAPI) SignUp(ctx context.Context, email, password, name string) (*supabase.Session, error) {
	return f.session, f.err
}

func (f *fakeAuthAPI) SignOut(ctx context.Context, accessToken string) error {
	f.signOutCalls++
	return f.err
}

func newAuthRouter(api AuthAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(api, store.NewRegistry(nil, zap.NewNop()), zap.NewNop(), false)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/sign-up", h.SignUp)
	r.POST("/api/auth/logout", h.Logout)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_SetsSessionCookies(t *testing.T) {
	api := &fakeAuthAPI{session: &supabase.Session{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresIn:    3600,
		User:         &supabase.User{ID: "user-1"},
	}}
	r := newAuthRouter(api)

	w := postJSON(r, "/api/auth/login", `{"email":"a@b.com","password":"secret123"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	joined := strings.Join(w.Header().Values("Set-Cookie"), "\n")
	assert.Contains(t, joined, middleware.AccessTokenCookie+"=access-1")
	assert.Contains(t, joined, middleware.RefreshTokenCookie+"=refresh-1")
}

func TestLogin_BadCredentials(t *testing.T) {
	api := &fakeAuthAPI{err: errors.New("Invalid login credentials")}
	r := newAuthRouter(api)

	w := postJSON(r, "/api/auth/login", `{"email":"a@b.com","password":"wrong-one"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid login credentials")
	assert.Empty(t, w.Header().Values("Set-Cookie"))
}

func TestLogin_RejectsMalformedRequest(t *testing.T) {
	r := newAuthRouter(&fakeAuthAPI{})

	w := postJSON(r, "/api/auth/login", `{"email":"not-an-email","password":""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignUp_Success(t *testing.T) {
	api := &fakeAuthAPI{session: &supabase.Session{}}
	r := newAuthRouter(api)

	w := postJSON(r, "/api/auth/sign-up", `{"name":"Ada","email":"a@b.com","password":"secret123"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

func TestSignUp_RejectsShortPassword(t *testing.T) {
	r := newAuthRouter(&fakeAuthAPI{})

	w := postJSON(r, "/api/auth/sign-up", `{"name":"Ada","email":"a@b.com","password":"short"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout_ClearsCookiesEvenWhenRevocationFails(t *testing.T) {
	api := &fakeAuthAPI{err: errors.New("auth service down")}
	r := newAuthRouter(api)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: "access-1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.Equal(t, 1, api.signOutCalls)

	joined := strings.Join(w.Header().Values("Set-Cookie"), "\n")
	assert.Contains(t, joined, middleware.AccessTokenCookie+"=;")
	assert.Contains(t, joined, middleware.RefreshTokenCookie+"=;")
}
