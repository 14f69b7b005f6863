package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("DB_MAX_CONN_LIFETIME", "")

	cfg := Load()
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins())
	require.Equal(t, time.Hour, cfg.DBMaxConnLife)
	require.Equal(t, "emails", cfg.RabbitMQEmailQueue)
}

func TestLoadTogglesDefaultOff(t *testing.T) {
	for _, k := range []string{"DEBUG_METRICS_ENABLED", "MAIL_SEND_ENABLED", "SEARCH_INDEX_ENABLED", "HTTP_LOG_ENABLED"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	require.False(t, cfg.DebugMetricsEnabled)
	require.False(t, cfg.MailSendEnabled)
	require.False(t, cfg.SearchIndexEnabled)
	require.False(t, cfg.HTTPLogEnabled)

	t.Setenv("DEBUG_METRICS_ENABLED", "true")
	require.True(t, Load().DebugMetricsEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("MAIL_SEND_ENABLED", "true")
	t.Setenv("DB_MAX_CONN_LIFETIME", "not-a-duration")

	cfg := Load()
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
	require.Equal(t, 12, cfg.BcryptCost)
	require.True(t, cfg.MailSendEnabled)
	require.Equal(t, time.Hour, cfg.DBMaxConnLife)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "squeegee", DBSSLMode: "disable"}
	require.Equal(t, "postgres://u:p@db:5432/squeegee?sslmode=disable", cfg.PostgresDSN())
}
