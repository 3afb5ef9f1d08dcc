package config_test

import (
	"testing"
	"time"

	"go-elms/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_IDLE_TIMEOUT", "")
	t.Setenv("SESSION_STORE", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("FRONTEND_URL", "http://app.example.com/")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, 10*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, "redis", cfg.SessionStore)
	assert.Equal(t, "http://app.example.com", cfg.FrontendURL)
	assert.NotEmpty(t, cfg.SessionSecret)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("idle timeout", func(t *testing.T) {
		t.Setenv("SESSION_IDLE_TIMEOUT", "soon")
		_, err := config.Load()
		assert.ErrorContains(t, err, "SESSION_IDLE_TIMEOUT")
	})

	t.Run("session store", func(t *testing.T) {
		t.Setenv("SESSION_STORE", "file")
		_, err := config.Load()
		assert.ErrorContains(t, err, "SESSION_STORE")
	})

	t.Run("production without secret", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("SESSION_SECRET", "")
		_, err := config.Load()
		assert.ErrorContains(t, err, "SESSION_SECRET")
	})
}
