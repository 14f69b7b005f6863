package validation

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/require"
)

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func TestToDetails_UsesJSONNames(t *testing.T) {
	Init()
	err := binding.Validator.ValidateStruct(&loginPayload{Email: "ana@x.com"})
	require.Error(t, err)
	require.Equal(t, map[string]string{"password": "is required"}, ToDetails(err))
}

func TestToDetails_PayloadErrors(t *testing.T) {
	var v loginPayload
	err := json.Unmarshal([]byte("{bad"), &v)
	require.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{"email": 5}`), &v)
	require.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	require.Equal(t, map[string]string{"payload": "empty body"}, ToDetails(io.EOF))
	require.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("boom")))
	require.Nil(t, ToDetails(nil))
}
