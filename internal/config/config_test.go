package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_DevelopmentDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SITE_URL", "https://indievia.test/")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "https://indievia.test", cfg.SiteURL)
	assert.Equal(t, time.Hour, cfg.SitemapCacheTTL)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.NotEmpty(t, cfg.AllowedOrigins)
}

func TestFromEnv_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("REFRESH_SECRET", "short")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnv_ProductionRequiresOrigins(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("REFRESH_SECRET", "fedcba9876543210fedcba9876543210")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("CORS_ALLOWED_ORIGINS", "https://indievia.com, https://www.indievia.com")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://indievia.com", "https://www.indievia.com"}, cfg.AllowedOrigins)
}

func TestFromEnv_InvalidDuration(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("ACCESS_TOKEN_TTL", "fifteen")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestGetDatabaseURL_FromParts(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRESQL_HOST", "db")
	t.Setenv("POSTGRESQL_USER", "indie")
	t.Setenv("POSTGRESQL_PASSWORD", "p@ss")
	t.Setenv("POSTGRESQL_DBNAME", "indievia")

	assert.Equal(t, "postgres://indie:p%40ss@db:5432/indievia?sslmode=disable", getDatabaseURL())
}

func TestFromEnv_AdminPasswordTooShort(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("ADMIN_EMAIL", "root@indievia.com")
	t.Setenv("ADMIN_PASSWORD", "short")

	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("ADMIN_PASSWORD", "long-enough-password")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "root@indievia.com", cfg.AdminEmail)
}
