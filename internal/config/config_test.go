package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("requires a JWT secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "development", cfg.Environment)
		assert.Equal(t, 24, cfg.JWTExpirationHours)
		assert.Equal(t, "gpt-4o-mini", cfg.AIModel)
		assert.False(t, cfg.AIEnabled())
	})

	t.Run("reads overrides from the environment", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("PORT", "9090")
		t.Setenv("JWT_EXPIRATION_HOURS", "2")
		t.Setenv("AI_API_URL", "https://llm.internal/v1")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, 2, cfg.JWTExpirationHours)
		assert.True(t, cfg.AIEnabled())
	})

	t.Run("ignores malformed integers", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("JWT_EXPIRATION_HOURS", "not-a-number")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 24, cfg.JWTExpirationHours)
	})
}
