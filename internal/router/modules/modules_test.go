package modules

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	handlers "github.com/squeegee-samurai/squeegee-api/internal/interface/http"
	"github.com/squeegee-samurai/squeegee-api/pkg/helpers"
)

func TestRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	api := e.Group("/api")
	NewAuthModule(&handlers.AuthHandler{}).Register(api)
	NewHealthModule(handlers.NewHealthHandler("squeegee-api", helpers.NewNopLogger())).Register(api)
	NewDebugModule().Register(api)

	routes := map[string]bool{}
	for _, ri := range e.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}
	require.True(t, routes["POST /api/auth/signup"])
	require.True(t, routes["POST /api/auth/login"])
	require.True(t, routes["GET /api/health"])
	require.True(t, routes["GET /api/debug/vars"])

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var vars map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vars))
	require.Contains(t, vars, "memstats")
}
