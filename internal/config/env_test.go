package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvironmentVariables_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("DAILY_LIMIT", "")
	t.Setenv("PUBLIC_SITE_URL", "https://toons.example.com/")
	t.Setenv("WHITELIST_EMAILS", " admin@example.com, ,editor@example.com ")

	cfg, err := LoadEnvironmentVariables()
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.StoreBackend)
	assert.Equal(t, 10, cfg.DailyLimit)
	assert.Equal(t, 100, cfg.MVPUserCap)
	assert.Equal(t, 3, cfg.ProviderRetries)
	assert.Equal(t, 2*time.Second, cfg.ProviderRetryDelay)
	assert.Equal(t, "https://toons.example.com", cfg.PublicSiteURL)
	assert.Equal(t, []string{"admin@example.com", "editor@example.com"}, cfg.WhitelistEmails)
}

func TestLoadEnvironmentVariables_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORE_BACKEND", "memory")

	_, err := LoadEnvironmentVariables()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadEnvironmentVariables_PostgresNeedsURL(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SUPABASE_CONNECTION_STRING", "")

	_, err := LoadEnvironmentVariables()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadEnvironmentVariables_UnknownBackend(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORE_BACKEND", "etcd")

	_, err := LoadEnvironmentVariables()
	assert.ErrorContains(t, err, "unsupported STORE_BACKEND")
}
