package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `
[type_overrides]
xml = "text"
sysname = "varchar"

[postgres]
dsn = "postgres://localhost/target"

[mssql]
dsn = "sqlserver://localhost?database=source"
schema = "sales"
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.TypeOverrides["xml"])
	assert.Equal(t, "varchar", cfg.TypeOverrides["sysname"])
	assert.Equal(t, "postgres://localhost/target", cfg.Postgres.DSN)
	assert.Equal(t, "sales", cfg.MSSQL.Schema)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(writeTempConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "dbo", cfg.MSSQL.Schema)
	assert.Empty(t, cfg.TypeOverrides)
}

func TestLoadConfig_UnknownKeys(t *testing.T) {
	_, err := loadConfig(writeTempConfig(t, "workers = 4\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config keys")
}

func TestLoadConfig_EmptyOverride(t *testing.T) {
	_, err := loadConfig(writeTempConfig(t, "[type_overrides]\nxml = \"\"\n"))
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
