package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SAP-F-2025/study-service/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_DRIVER", "SESSION_STORE", "SESSION_TTL", "GENERATION_PROVIDER",
		"GROQ_API_KEY", "GROQ_MODEL", "GENERATION_TEMPERATURE", "GENERATION_MAX_TOKENS", "ENVIRONMENT"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "memory", cfg.SessionStore)
	assert.Equal(t, "groq", cfg.Generation.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Generation.GroqModel)
	assert.Equal(t, 0.5, cfg.Generation.Temperature)
	assert.Equal(t, 4096, cfg.Generation.MaxTokens)
	assert.Empty(t, cfg.Generation.GroqAPIKey)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("ADMIN_EMAILS", " admin@x.com , ops@x.com,")
	t.Setenv("GENERATION_TIMEOUT", "not-a-duration")
	t.Setenv("EVENTS_ENABLED", "true")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"admin@x.com", "ops@x.com"}, cfg.AdminEmails)
	assert.Equal(t, 60*time.Second, cfg.Generation.Timeout)
	assert.True(t, cfg.Events.Enabled)
	assert.True(t, cfg.IsAdmin("Admin@X.com"))
	assert.False(t, cfg.IsAdmin("student@x.com"))
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STUDY_TEST_PROVIDER=gemini\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("STUDY_TEST_PROVIDER") })

	_, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini", os.Getenv("STUDY_TEST_PROVIDER"))
}

func TestEventConfig_CreateEventPublisher(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	for _, cfg := range []EventConfig{
		{Enabled: false, Publisher: "kafka"},
		{Enabled: true, Publisher: "mock"},
		{Enabled: true, Publisher: "carrier-pigeon"},
	} {
		publisher, err := cfg.CreateEventPublisher(logger)
		require.NoError(t, err)
		assert.IsType(t, &events.MockEventPublisher{}, publisher)
	}
}
