package middleware

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithAuth(header string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func runIdentity(t *testing.T, header string) echo.Context {
	t.Helper()
	c := contextWithAuth(header)
	handler := Identity()(func(c echo.Context) error { return nil })
	require.NoError(t, handler(c))
	return c
}

func TestIdentity(t *testing.T) {
	t.Run("decodes a base64 bearer token", func(t *testing.T) {
		token := base64.StdEncoding.EncodeToString([]byte("alice"))
		c := runIdentity(t, "Bearer "+token)
		assert.Equal(t, "alice", CurrentUser(c))
	})

	t.Run("tolerates unpadded base64", func(t *testing.T) {
		token := base64.RawStdEncoding.EncodeToString([]byte("alice"))
		c := runIdentity(t, "Bearer "+token)
		assert.Equal(t, "alice", CurrentUser(c))
	})

	t.Run("leaves the request anonymous on bad input", func(t *testing.T) {
		for name, header := range map[string]string{
			"no header":     "",
			"no bearer":     "Basic abc",
			"empty token":   "Bearer ",
			"not base64":    "Bearer %%%%",
			"decodes empty": "Bearer " + base64.StdEncoding.EncodeToString(nil),
		} {
			c := runIdentity(t, header)
			assert.Empty(t, CurrentUser(c), name)
		}
	})
}

func TestRequireUser(t *testing.T) {
	handler := RequireUser()(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	t.Run("rejects anonymous requests", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		require.NoError(t, handler(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("passes authenticated requests through", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("user_id", "alice")
		require.NoError(t, handler(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
