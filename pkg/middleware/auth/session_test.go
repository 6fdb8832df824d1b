package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/coverply/warranty-admin/pkg/tokens"
)

var testSecret = []byte("test-session-secret")

func signSessionToken(t *testing.T, role string) string {
	t.Helper()

	claims := tokens.SessionClaims{
		Role: role,
		Shop: "demo-shop.myshopify.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, token string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/warranties", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := NewSessionMiddleware(testSecret)
	handler := mw.RequireAdmin(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, handler(c)
}

func TestRequireAdmin_ValidToken(t *testing.T) {
	t.Parallel()

	rec, err := doRequest(t, signSessionToken(t, "admin"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_MissingToken(t *testing.T) {
	t.Parallel()

	_, err := doRequest(t, "")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAdmin_InvalidToken(t *testing.T) {
	t.Parallel()

	_, err := doRequest(t, "not-a-jwt")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAdmin_NonAdminRole(t *testing.T) {
	t.Parallel()

	_, err := doRequest(t, signSessionToken(t, "staff"))
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusForbidden, he.Code)
}
