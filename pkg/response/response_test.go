package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	Error(c, 0, "invalid payload", map[string]string{"email": "is required"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.True(t, c.IsAborted())

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.False(t, body.Success)
	require.Equal(t, "req-1", body.RequestID)
	require.Equal(t, "invalid payload", body.Message)
	require.Equal(t, map[string]any{"email": "is required"}, body.Error)
}
