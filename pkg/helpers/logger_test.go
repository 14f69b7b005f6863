package helpers

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	l := NewLogger("squeegee-api", "development", "")
	require.Equal(t, logrus.DebugLevel, l.GetLevel())
	_, isText := l.Formatter.(*logrus.TextFormatter)
	require.True(t, isText)

	l = NewLogger("squeegee-api", "production", "")
	require.Equal(t, logrus.InfoLevel, l.GetLevel())
	_, isJSON := l.Formatter.(*logrus.JSONFormatter)
	require.True(t, isJSON)

	l = NewLogger("squeegee-api", "production", "warn")
	require.Equal(t, logrus.WarnLevel, l.GetLevel())

	l = NewLogger("squeegee-api", "production", "loud")
	require.Equal(t, logrus.InfoLevel, l.GetLevel())
}
