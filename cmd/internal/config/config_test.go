package config

import (
	"os"
	"testing"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEnv_Defaults(t *testing.T) {
	t.Setenv("COGNITO_REGION", "us-east-2")
	t.Setenv("COGNITO_USER_POOL_ID", "us-east-2_abc")

	var cfg Config
	require.NoError(t, cleanenv.ReadEnv(&cfg))

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "https://api.frankfurter.dev/v1", cfg.Provider.CurrencyBaseURL)
	assert.Equal(t, 10*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.Google.Enabled())
	assert.False(t, cfg.IsProduction())
}

func TestReadEnv_MissingRequired(t *testing.T) {
	// Setenv registers the restore, Unsetenv makes the key truly absent
	t.Setenv("COGNITO_REGION", "")
	t.Setenv("COGNITO_USER_POOL_ID", "")
	require.NoError(t, os.Unsetenv("COGNITO_REGION"))
	require.NoError(t, os.Unsetenv("COGNITO_USER_POOL_ID"))

	var cfg Config
	assert.Error(t, cleanenv.ReadEnv(&cfg))
}

func TestLocation(t *testing.T) {
	t.Parallel()

	cfg := &Config{DefaultTimezone: "Asia/Kuala_Lumpur"}
	assert.Equal(t, "Asia/Kuala_Lumpur", cfg.Location().String())

	cfg = &Config{DefaultTimezone: "Not/AZone"}
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestGommonLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]log.Lvl{
		"debug": log.DEBUG,
		"warn":  log.WARN,
		"error": log.ERROR,
		"off":   log.OFF,
		"info":  log.INFO,
		"":      log.INFO,
	}
	for name, want := range tests {
		cfg := &Config{LogLevel: name}
		assert.Equal(t, want, cfg.GommonLevel(), name)
	}
}

func TestGoogleConfig_Enabled(t *testing.T) {
	t.Parallel()

	g := GoogleConfig{ClientID: "id", ClientSecret: "secret", RedirectURI: "http://localhost/cb"}
	assert.True(t, g.Enabled())

	g.RedirectURI = ""
	assert.False(t, g.Enabled())
}
