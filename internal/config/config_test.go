package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnv = []string{
	"CONFIG_PATH", "PORT", "SHUTDOWN_TIMEOUT", "ADMIN_API_KEYS",
	"DB_DRIVER", "DB_URL", "SUPABASE_DB_URL", "SQLITE_PATH",
	"GOOGLE_SHEET_ID", "REPLIT_CONNECTORS_HOSTNAME", "REPL_IDENTITY", "WEB_REPL_RENEWAL",
	"SHEETS_TIMEOUT", "SHEETS_TOKEN_TTL", "LOG_ENV", "LOG_LEVEL", "OTEL_ENDPOINT", "OTEL_SERVICE_NAME",
}

// clearEnv blanks every key Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnv {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	// Load looks for .env in the working directory
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_URL", "postgres://u:p@localhost:5432/db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.Sheets.Timeout)
	assert.Equal(t, 50*time.Minute, cfg.Sheets.DefaultTokenTTL)
	assert.Equal(t, "prod", cfg.Log.Env)
	assert.False(t, cfg.SheetsEnabled())
	assert.Empty(t, cfg.AdminAPIKeys)
}

func TestLoad_RequiresDBURLForPostgres(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.EqualError(t, err, "DB_URL required")
}

func TestLoad_SupabaseAlias(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_DB_URL", "postgres://supabase/db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://supabase/db", cfg.DB.URL)
}

func TestLoad_SQLiteNeedsNoURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.DB.SQLitePath)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}

func TestLoad_SheetsNeedConnectorHost(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_URL", "postgres://x")
	t.Setenv("GOOGLE_SHEET_ID", "sheet-123")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("REPLIT_CONNECTORS_HOSTNAME", "connectors.example")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.SheetsEnabled())
}

func TestLoad_AdminKeysAreTrimmed(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_URL", "postgres://x")
	t.Setenv("ADMIN_API_KEYS", " key-a , ,key-b")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"key-a", "key-b"}, cfg.AdminAPIKeys)
}

func TestLoad_YAMLFileWithEnvOverride(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
port: "9090"
db:
  driver: sqlite
  sqlite_path: /data/reg.db
sheets:
  timeout: 5s
log:
  env: dev
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "/data/reg.db", cfg.DB.SQLitePath)
	assert.Equal(t, 5*time.Second, cfg.Sheets.Timeout)
	assert.Equal(t, "dev", cfg.Log.Env)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadSheets_IgnoresDatabaseSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPLIT_CONNECTORS_HOSTNAME", "connectors.example")
	t.Setenv("REPL_IDENTITY", "id-token")

	s, err := LoadSheets()
	require.NoError(t, err)

	assert.Equal(t, "connectors.example", s.ConnectorsHost)
	assert.Equal(t, "id-token", s.ReplIdentity)
	assert.Equal(t, 50*time.Minute, s.DefaultTokenTTL)
}

func TestLoadSheets_RequiresHost(t *testing.T) {
	clearEnv(t)

	_, err := LoadSheets()
	require.EqualError(t, err, "REPLIT_CONNECTORS_HOSTNAME required")
}
