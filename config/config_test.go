package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 3, cfg.StockConflictRetries)
	assert.Equal(t, 20*time.Millisecond, cfg.StockRetryInterval)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, "events.orders", cfg.OrderExchange)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := "PORT=9090\nSTOCK_CONFLICT_RETRIES=5\nCORS_ALLOW_ORIGINS=https://a.test, https://b.test\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5, cfg.StockConflictRetries)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.AllowedOrigins())
}

func TestDSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: 5432, DBUser: "u", DBPassword: "p", DBName: "shop", DBSSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=shop sslmode=disable", cfg.DSN())

	cfg.DatabaseURL = "postgres://u:p@db/shop"
	assert.Equal(t, "postgres://u:p@db/shop", cfg.DSN())
}
