package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("JWT_ACCESS_EXPIRY", "")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("LOG_RETENTION_DAYS", "")
	t.Setenv("RATE_LIMIT_API", "")
	t.Setenv("RATE_LIMIT_AUTH", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, 30, cfg.LogRetentionDays)
	assert.Equal(t, 60, cfg.RateLimitAPI)
	assert.Equal(t, 10, cfg.RateLimitAuth)
}

func TestLoad_FileOverlayAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foodhub.yaml")
	content := "PORT: 9090\nDB_NAME: recipes\nSPOONACULAR_RPS: 0.5\nJWT_ACCESS_EXPIRY: 1h\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("PORT", "")
	t.Setenv("DB_NAME", "from_env")
	t.Setenv("SPOONACULAR_RPS", "")
	t.Setenv("JWT_ACCESS_EXPIRY", "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "from_env", cfg.DBName)
	assert.InDelta(t, 0.5, cfg.SpoonacularRPS, 0.0001)
	assert.Equal(t, time.Hour, cfg.JWTAccessExpiry)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")
	t.Setenv("JWT_REFRESH_EXPIRY", "soon")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, 168*time.Hour, cfg.JWTRefreshExpiry)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	assert.EqualError(t, cfg.Validate(), "JWT_SECRET is required")

	cfg.JWTSecret = "s"
	assert.EqualError(t, cfg.Validate(), "DB_PASSWORD is required")

	cfg.DBPassword = "p"
	assert.NoError(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5432", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}
