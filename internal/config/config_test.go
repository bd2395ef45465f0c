package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("AI_PROVIDER", "")

	cfg := FromEnv()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "file", cfg.DBType)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, "openai", cfg.AIProvider)
	assert.Empty(t, cfg.AIAPIKey)
	assert.Equal(t, 30*time.Second, cfg.AITimeout)
	assert.Len(t, cfg.CORSOrigins, 3)
}

func TestFromEnv_GeminiKey(t *testing.T) {
	t.Setenv("AI_PROVIDER", "Gemini")
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg := FromEnv()
	assert.Equal(t, "gemini", cfg.AIProvider)
	assert.Equal(t, "g-key", cfg.AIAPIKey)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		t.Setenv("APP_ENV", "development")
		return FromEnv()
	}

	cfg := base()
	cfg.DBType = "postgres"
	cfg.DBDSN = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Env = "qa"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.AuthMode = "remote"
	assert.Error(t, cfg.Validate())
	cfg.AuthServiceURL = "http://auth.local/validate"
	assert.NoError(t, cfg.Validate())

	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	cfg = FromEnv()
	assert.Error(t, cfg.Validate())
}
