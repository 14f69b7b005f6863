package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/squeegee-samurai/squeegee-api/pkg/helpers"
)

func up(ctx context.Context) error   { return nil }
func down(ctx context.Context) error { return errors.New("unreachable") }

func runHealth(t *testing.T, checks ...Check) (int, healthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHealthHandler("squeegee-api", helpers.NewNopLogger(), checks...)
	e := gin.New()
	e.GET("/api/health", h.Health)

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	var body healthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHealth(t *testing.T) {
	code, body := runHealth(t, Check{Name: "postgres", Required: true, Fn: up}, Check{Name: "redis", Fn: up})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", body.Status)
	require.Equal(t, "squeegee-api", body.Service)
	require.Equal(t, map[string]string{"postgres": "up", "redis": "up"}, body.Checks)

	code, body = runHealth(t, Check{Name: "postgres", Required: true, Fn: up}, Check{Name: "redis", Fn: down})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "degraded", body.Status)
	require.Equal(t, "down", body.Checks["redis"])

	code, body = runHealth(t, Check{Name: "postgres", Required: true, Fn: down}, Check{Name: "redis", Fn: down})
	require.Equal(t, http.StatusServiceUnavailable, code)
	require.Equal(t, "down", body.Status)
}
