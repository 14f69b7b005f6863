package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/squeegee-samurai/squeegee-api/config"
)

func TestRenderWelcome(t *testing.T) {
	cfg := &config.Config{CompanyName: "Squeegee Samurai", LoginURL: "https://example.test/login"}
	data := NewWelcomeData(cfg, "Ana", "Ana Lee", "ana@x.com", WithTime(time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)))

	subject, text, html, err := Render(Welcome, data)
	require.NoError(t, err)
	require.Equal(t, "Welcome to Squeegee Samurai, Ana", subject)
	require.Contains(t, text, "Hi Ana,")
	require.Contains(t, text, "ana@x.com")
	require.Contains(t, text, "https://example.test/login")
	require.Contains(t, html, "<strong>ana@x.com</strong>")
	require.Equal(t, "welcome", data["Type"])
	require.Equal(t, "02 January 2026, 03:04", data["Time"])
}

func TestRenderEscapesHTML(t *testing.T) {
	data := NewWelcomeData(nil, "<b>Ana</b>", "", "ana@x.com")
	_, text, html, err := Render(Welcome, data)
	require.NoError(t, err)
	require.Contains(t, text, "Hi <b>Ana</b>,")
	require.NotContains(t, html, "<b>Ana</b>")
	require.Contains(t, html, "&lt;b&gt;Ana&lt;/b&gt;")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("does_not_exist", map[string]any{})
	require.Error(t, err)
}

func TestDefaultFn(t *testing.T) {
	require.Equal(t, "fallback", defaultFn("fallback", ""))
	require.Equal(t, "fallback", defaultFn("fallback", nil))
	require.Equal(t, "fallback", defaultFn("fallback", 0))
	require.Equal(t, "value", defaultFn("fallback", "value"))
}
