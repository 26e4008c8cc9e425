package config

import (
	"log/slog"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaults(t *testing.T) {
	cfg, err := Load(nil, env(nil))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, SourceStatic, cfg.DataSource)
	assert.Equal(t, "jp", cfg.DefaultLang)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestEnvironmentThenFlags(t *testing.T) {
	e := env(map[string]string{
		"PORT":         "9000",
		"DATA_SOURCE":  "SQLite",
		"DB_PATH":      "/tmp/m.db",
		"DEFAULT_LANG": "en",
		"LOG_LEVEL":    "debug",
	})
	cfg, err := Load(nil, e)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, SourceSQLite, cfg.DataSource)
	assert.Equal(t, "/tmp/m.db", cfg.DBPath)
	assert.Equal(t, "en", cfg.DefaultLang)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)

	cfg, err = Load([]string{"-p", "7000", "--lang", "jp", "--log-level", "warn"}, e)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "jp", cfg.DefaultLang)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}

func TestRejectsBadValues(t *testing.T) {
	_, err := Load([]string{"--data-source", "kafka"}, env(nil))
	assert.ErrorContains(t, err, "unknown data source")

	_, err = Load(nil, env(map[string]string{"LOG_LEVEL": "loud"}))
	assert.Error(t, err)

	_, err = Load([]string{"--help"}, env(nil))
	assert.ErrorIs(t, err, pflag.ErrHelp)
}
