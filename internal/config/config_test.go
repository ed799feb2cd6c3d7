package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("API_PREFIX", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("RECONCILE_INTERVAL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.App.JWTTTL)
	assert.Equal(t, "/api", cfg.Server.APIPrefix)
	assert.Equal(t, defaultOrigins, cfg.Server.AllowedOrigins)
	assert.Zero(t, cfg.Indexer.ReconcileInterval)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/donations.db")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("API_PREFIX", "/v1/")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "20")
	t.Setenv("RECONCILE_INTERVAL", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Hour, cfg.App.JWTTTL)
	assert.Equal(t, "/v1", cfg.Server.APIPrefix)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 20, cfg.Server.RateLimitRPS)
	assert.Equal(t, 5*time.Minute, cfg.Indexer.ReconcileInterval)
	assert.Equal(t, "/tmp/donations.db?_foreign_keys=on", cfg.GetDSN())
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	t.Setenv("JWT_TTL", "a day")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("JWT_TTL", "")
	t.Setenv("DB_DRIVER", "mysql")
	_, err = Load()
	require.Error(t, err)
}

func TestGetDSNPostgres(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Driver: "postgres", Host: "db", Port: "5432", User: "u", Password: "p", DBName: "d", SSLMode: "require",
	}}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=d sslmode=require", cfg.GetDSN())
}
