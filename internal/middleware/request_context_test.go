package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wendynovel0/prueba/internal/audit"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRequestContext_Provenance(t *testing.T) {
	e := echo.New()
	var got audit.Provenance
	e.GET("/", func(c echo.Context) error {
		got = audit.ProvenanceFrom(c.Request().Context())
		return c.NoContent(http.StatusNoContent)
	}, RequestContext())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRealIP, "203.0.113.9")
	req.Header.Set("User-Agent", "curl/8.0")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "203.0.113.9", got.IPAddress)
	assert.Equal(t, "curl/8.0", got.UserAgent)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestRequestContext_KeepsClientRequestID(t *testing.T) {
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, requestID(c))
	}, RequestContext())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Body.String())
	assert.Equal(t, "req-123", rec.Header().Get(echo.HeaderXRequestID))
}
