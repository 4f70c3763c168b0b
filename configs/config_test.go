package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFill(t *testing.T) {
	t.Run("defaults apply when unset", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, fill(cfg))

		assert.EqualValues(t, "development", cfg.AppEnv)
		assert.Equal(t, 8080, cfg.AppPort)
		assert.InDelta(t, 84.70, cfg.PixAmount, 0.0001)
		assert.False(t, cfg.RabbitEnabled)
		assert.Equal(t, int64(0), cfg.TelegramChatID)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("APP_PORT", "9090")
		t.Setenv("RABBIT_ENABLED", "true")
		t.Setenv("PIX_AMOUNT", "19.90")
		t.Setenv("TELEGRAM_CHAT_ID", "-1001234")

		cfg := &Config{}
		require.NoError(t, fill(cfg))

		assert.Equal(t, 9090, cfg.AppPort)
		assert.True(t, cfg.RabbitEnabled)
		assert.InDelta(t, 19.90, cfg.PixAmount, 0.0001)
		assert.Equal(t, int64(-1001234), cfg.TelegramChatID)
	})

	t.Run("bad values are rejected", func(t *testing.T) {
		t.Setenv("APP_PORT", "eighty")
		assert.Error(t, fill(&Config{}))
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		require.NoError(t, fill(cfg))
		return cfg
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.AppEnv = "prod"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.AppEnv = "production"
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")

	cfg.JWTSecret = "s"
	cfg.PixSecretKey = "k"
	assert.ErrorContains(t, cfg.Validate(), "PIX_API_URL")

	cfg.PixAPIURL = "https://pix.operator.test/api/v1"
	assert.NoError(t, cfg.Validate())

	cfg.PixAmount = 0
	assert.Error(t, cfg.Validate())
}
