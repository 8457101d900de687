package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		ServerPort:         "8080",
		RequestTimeout:     30 * time.Second,
		DatabaseURL:        "postgres://localhost/waveo",
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		JWTAccessTTL:       time.Hour,
		JWTRefreshTTL:      168 * time.Hour,
		GeocodeBaseURL:     "https://nominatim.openstreetmap.org",
	}
}

func TestValidateAccepts(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRequiresSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.AccessTokenSecret = ""
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.RefreshTokenSecret = ""
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsEqualSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.RefreshTokenSecret = cfg.AccessTokenSecret
	require.Error(t, cfg.Validate())
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = ""
	require.Error(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/waveo")
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.ServerPort)
	require.Equal(t, time.Hour, cfg.JWTAccessTTL)
	require.Equal(t, 168*time.Hour, cfg.JWTRefreshTTL)
	require.Equal(t, 10*time.Minute, cfg.GeocodeCacheTTL)
	require.False(t, cfg.CookieSecure)
}

func TestSplitCSV(t *testing.T) {
	require.Nil(t, splitCSV("  "))
	require.Equal(t, []string{"a", "b"}, splitCSV("a, b,"))
}
