package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validTestConfig() *Config {
	cfg := &Config{
		EnableMocks: true,
	}
	cfg.SheetCfg = SheetConfig{
		FreeLimit:       5,
		MaxContentRunes: 24000,
		Temperature:     0.4,
	}
	cfg.ChatCfg = ChatConfig{
		Temperature:    0.5,
		MaxWindowTurns: 20,
	}
	cfg.SessionCfg = SessionConfig{
		TTL:             2 * time.Hour,
		CleanupInterval: 10 * time.Minute,
	}
	return cfg
}

func TestValidateConfigAcceptsDefaults(t *testing.T) {
	assert.NoError(t, validateConfig(validTestConfig()))
}

func TestValidateConfigRequiresAPIKeyWithoutMocks(t *testing.T) {
	cfg := validTestConfig()
	cfg.EnableMocks = false

	err := validateConfig(cfg)
	assert.ErrorContains(t, err, "OPENAI_API_KEY")
}

func TestValidateConfigRejectsNonPositiveLimit(t *testing.T) {
	cfg := validTestConfig()
	cfg.SheetCfg.FreeLimit = 0

	err := validateConfig(cfg)
	assert.ErrorContains(t, err, "SHEET_FREE_LIMIT")
}

func TestValidateConfigRejectsBadTemperature(t *testing.T) {
	cfg := validTestConfig()
	cfg.ChatCfg.Temperature = 3

	err := validateConfig(cfg)
	assert.ErrorContains(t, err, "CHAT_TEMPERATURE")
}

func TestValidateConfigRejectsShortTTL(t *testing.T) {
	cfg := validTestConfig()
	cfg.SessionCfg.TTL = time.Second

	err := validateConfig(cfg)
	assert.ErrorContains(t, err, "SESSION_TTL")
}
