package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "1M", cfg.Server.BodyLimit)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ProviderYahoo, cfg.DataSource.Provider)
	assert.Equal(t, 60, cfg.DataSource.LookbackDays)
	assert.Equal(t, "", cfg.Database.SQLitePath)
	assert.Equal(t, 30, cfg.Database.RetentionDays)
	assert.Equal(t, "0 30 3 * * *", cfg.Schedule.PruneCron)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  read_timeout: 3s
log:
  level: debug
  format: json
data_source:
  provider: polygon
  api_key: secret
  lookback_days: 90
database:
  sqlite_path: /tmp/analyst.db
  retention_days: 7
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, ProviderPolygon, cfg.DataSource.Provider)
	assert.Equal(t, 90, cfg.DataSource.LookbackDays)
	assert.Equal(t, 7*24*time.Hour, cfg.Retention())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("DATA_PROVIDER", "none")
	t.Setenv("SQLITE_PATH", "/tmp/override.db")
	t.Setenv("RETENTION_DAYS", "14")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, ProviderNone, cfg.DataSource.Provider)
	assert.Equal(t, "/tmp/override.db", cfg.Database.SQLitePath)
	assert.Equal(t, 14, cfg.Database.RetentionDays)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unterminated"))
	assert.ErrorContains(t, err, "parse config")

	t.Setenv("SERVER_PORT", "eighty")
	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "SERVER_PORT")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"unknown provider", func(c *Config) { c.DataSource.Provider = "bloomberg" }, "data_source.provider"},
		{"polygon without key", func(c *Config) { c.DataSource.Provider = ProviderPolygon }, "api_key"},
		{"no lookback", func(c *Config) { c.DataSource.LookbackDays = -1 }, "lookback_days"},
		{"sqlite without retention", func(c *Config) {
			c.Database.SQLitePath = "x.db"
			c.Database.RetentionDays = -1
		}, "retention_days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}
