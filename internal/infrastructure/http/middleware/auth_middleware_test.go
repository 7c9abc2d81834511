package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/interview-assistant/pkg/jwt"
)

func serve(t *testing.T, manager *jwt.Manager, setup func(*http.Request)) (*httptest.ResponseRecorder, uuid.UUID) {
	t.Helper()

	var seen uuid.UUID
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		seen, _ = c.Get("user_id").(uuid.UUID)
		return c.NoContent(http.StatusNoContent)
	}, EchoAuth(manager))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	setup(req)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestEchoAuth_BearerHeader(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour, "interview-assistant")
	userID := uuid.New()
	tok, err := manager.GenerateAccessToken(userID, "")
	require.NoError(t, err)

	rec, seen := serve(t, manager, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok)
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, userID, seen)
}

func TestEchoAuth_Cookie(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour, "interview-assistant")
	tok, err := manager.GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	rec, _ := serve(t, manager, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "access_token", Value: tok})
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestEchoAuth_Rejects(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour, "interview-assistant")

	rec, _ := serve(t, manager, func(r *http.Request) {})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = serve(t, manager, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer garbage")
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalEchoAuth(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour, "interview-assistant")
	userID := uuid.New()
	tok, err := manager.GenerateAccessToken(userID, "")
	require.NoError(t, err)

	e := echo.New()
	var seen interface{}
	e.GET("/join", func(c echo.Context) error {
		seen = c.Get("user_id")
		return c.NoContent(http.StatusNoContent)
	}, OptionalEchoAuth(manager))

	req := httptest.NewRequest(http.MethodGet, "/join", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, seen)

	req = httptest.NewRequest(http.MethodGet, "/join", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, userID, seen)
}
