package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// isolate moves into an empty temp dir so neither .env nor configs/config.yaml
// from the repo leak into the test, and clears every variable Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{
		"CONFIG_PATH", "PORT", "HTTP_ADDRESS", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT",
		"CORS_ALLOWED_ORIGINS", "FOOD_DB_PATH", "STORAGE_DRIVER", "DB_PATH", "DB_URL",
		"VALKEY_ADDR", "SESSION_TTL",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, "data/food_database.json", cfg.Catalog.Path)
	require.Equal(t, DriverSQLite, cfg.Storage.Driver)
	require.Equal(t, "nutri.db", cfg.Storage.SQLitePath)
	require.Equal(t, 24*time.Hour, cfg.Storage.SessionTTL)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9000"
  allowedOrigins: ["https://app.example.com"]
catalog:
  path: /srv/foods.yaml
storage:
  driver: memory
`), 0o644))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SESSION_TTL", "2h")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.HTTP.Address)
	require.Equal(t, []string{"https://app.example.com"}, cfg.HTTP.AllowedOrigins)
	require.Equal(t, "/srv/foods.yaml", cfg.Catalog.Path)
	require.Equal(t, DriverMemory, cfg.Storage.Driver)
	require.Equal(t, 2*time.Hour, cfg.Storage.SessionTTL)
}

func TestLoad_PortAndAddressPrecedence(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "5000")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":5000", cfg.HTTP.Address)

	t.Setenv("HTTP_ADDRESS", "127.0.0.1:7000")
	cfg, err = Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:7000", cfg.HTTP.Address)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CORS_ALLOWED_ORIGINS=https://a.test, https://b.test\n"), 0o644))
	// godotenv does not override variables that are already set, even empty ones.
	require.NoError(t, os.Unsetenv("CORS_ALLOWED_ORIGINS"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.HTTP.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty address", func(c *Config) { c.HTTP.Address = "" }},
		{"empty catalog path", func(c *Config) { c.Catalog.Path = " " }},
		{"negative ttl", func(c *Config) { c.Storage.SessionTTL = -time.Second }},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mongo" }},
		{"postgres without dsn", func(c *Config) { c.Storage.Driver = DriverPostgres }},
		{"valkey without addr", func(c *Config) { c.Storage.Driver = DriverValkey }},
		{"sqlite without path", func(c *Config) { c.Storage.SQLitePath = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}

	require.NoError(t, defaultConfig().Validate())
}
