package config

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var settingsEnv = []string{
	"PORT", "LOG_LEVEL", "DATABASE_DSN", "REDIS_URL", "SESSION_SECRET", "JWT_SECRET", "ORACLE_PROVIDER",
	"GEMINI_API_KEY", "GEMINI_MODEL", "OPENAI_API_KEY", "OPENAI_MODEL", "ORACLE_TIMEOUT",
	"APP_TIMEZONE", "ALLOWED_ORIGINS", "GENERATE_RATE_LIMIT", "MAX_UPLOAD_MB",
}

func clearSettingsEnv(t *testing.T) {
	for _, k := range settingsEnv {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearSettingsEnv(t)

	s := Load()
	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, defaultDSN, s.DatabaseDSN)
	assert.Equal(t, defaultSessionSecret, s.SessionSecret)
	assert.False(t, s.SessionSecretSet)
	assert.Equal(t, defaultJWTSecret, s.JWTSecret)
	assert.False(t, s.JWTSecretSet)
	assert.Equal(t, ProviderGemini, s.OracleProvider)
	assert.Equal(t, "gemini-2.5-flash", s.GeminiModel)
	assert.Equal(t, 60*time.Second, s.OracleTimeout)
	assert.Equal(t, time.UTC, s.Timezone)
	assert.Nil(t, s.AllowedOrigins)
	assert.Equal(t, 10, s.GenerateRateLimit)
	assert.Equal(t, int64(10<<20), s.MaxUploadBytes)
	assert.Empty(t, s.OracleAPIKey())
}

func TestLoadOverrides(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("JWT_SECRET", "jwt-s3cret")
	t.Setenv("ORACLE_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEY", "gm-test")
	t.Setenv("ORACLE_TIMEOUT", "15s")
	t.Setenv("APP_TIMEZONE", "America/Sao_Paulo")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("GENERATE_RATE_LIMIT", "nope")
	t.Setenv("MAX_UPLOAD_MB", "2")

	s := Load()
	assert.True(t, s.SessionSecretSet)
	assert.Equal(t, "jwt-s3cret", s.JWTSecret)
	assert.True(t, s.JWTSecretSet)
	assert.Equal(t, ProviderOpenAI, s.OracleProvider)
	assert.Equal(t, "sk-test", s.OracleAPIKey())
	assert.Equal(t, 15*time.Second, s.OracleTimeout)
	assert.Equal(t, "America/Sao_Paulo", s.Timezone.String())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, s.AllowedOrigins)
	assert.Equal(t, 10, s.GenerateRateLimit)
	assert.Equal(t, int64(2<<20), s.MaxUploadBytes)
}

func TestLoadBadTimezoneFallsBackToUTC(t *testing.T) {
	clearSettingsEnv(t)
	t.Setenv("APP_TIMEZONE", "Mars/Olympus_Mons")

	assert.Equal(t, time.UTC, Load().Timezone)
}

func TestWithContextCarriesFields(t *testing.T) {
	hook := test.NewLocal(Logger)
	defer hook.Reset()

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	ctx = WithLogFields(ctx, logrus.Fields{"user_id": "u-1"})
	ctx = WithLogFields(ctx, logrus.Fields{"session_id": "s-1"})

	WithContext(ctx).Info("hello")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "req-1", entry.Data["request_id"])
	assert.Equal(t, "u-1", entry.Data["user_id"])
	assert.Equal(t, "s-1", entry.Data["session_id"])
}

func TestDialectorFor(t *testing.T) {
	assert.Equal(t, "postgres", dialectorFor("postgres://u:p@localhost:5432/quiz").Name())
	assert.Equal(t, "postgres", dialectorFor("host=localhost user=u dbname=quiz").Name())
	assert.Equal(t, "mysql", dialectorFor("mysql://u:p@tcp(localhost:3306)/quiz").Name())
	assert.Equal(t, "sqlite", dialectorFor("file:quiz.db").Name())
}
