package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mapkit/internal/pkg/config"
	"mapkit/internal/pkg/logctx"
	"mapkit/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	cfg := &config.Config{Server: config.ServerConfig{Host: "127.0.0.1", Port: 8080, BodyLimit: "1K"}}
	return NewEchoServer(cfg, logger.NewNop())
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.GetEcho().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Server is healthy","data":{"status":"ok"}}`, rec.Body.String())
}

func TestJSONSerializer_DecodesNumbersExactly(t *testing.T) {
	s := newTestServer()
	var got map[string]any
	s.GetEcho().POST("/echo", func(c echo.Context) error {
		if err := c.Bind(&got); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, got)
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"value":1704067200.000001}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.GetEcho().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "{\"value\":1704067200.000001}\n", rec.Body.String())
}

func TestJSONSerializer_RejectsMalformedBody(t *testing.T) {
	s := newTestServer()
	s.GetEcho().POST("/echo", func(c echo.Context) error {
		var body map[string]any
		return c.Bind(&body)
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"value":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.GetEcho().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBodyLimit(t *testing.T) {
	s := newTestServer()
	s.GetEcho().POST("/echo", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 2048)))
	rec := httptest.NewRecorder()
	s.GetEcho().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRequestIDReachesHandlerContext(t *testing.T) {
	s := newTestServer()
	s.GetEcho().GET("/whoami", func(c echo.Context) error {
		id, _ := logctx.RequestID(c.Request().Context())
		return c.String(http.StatusOK, id)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-42")
	rec := httptest.NewRecorder()
	s.GetEcho().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-42", rec.Body.String())
}
