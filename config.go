package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the optional TOML-driven settings. Conversion itself needs
// none of this; the compiled-in type table and the two positional file
// arguments are enough. The config adds rename-only type overrides and
// connection details for the apply and introspect subcommands.
type Config struct {
	TypeOverrides map[string]string `toml:"type_overrides"`
	Postgres      PostgresConfig    `toml:"postgres"`
	MSSQL         MSSQLConfig       `toml:"mssql"`
}

// PostgresConfig identifies the target database for the apply subcommand.
type PostgresConfig struct {
	DSN string `toml:"dsn"`
}

// MSSQLConfig identifies the source database for the introspect subcommand.
type MSSQLConfig struct {
	DSN    string `toml:"dsn"`
	Schema string `toml:"schema"`
}

func defaultConfig() *Config {
	return &Config{
		MSSQL: MSSQLConfig{Schema: "dbo"},
	}
}

// loadConfig reads a TOML config file, rejecting unknown keys.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := defaultConfig()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if unknown := md.Undecoded(); len(unknown) > 0 {
		keys := make([]string, len(unknown))
		for i, k := range unknown {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	for src, dst := range cfg.TypeOverrides {
		if strings.TrimSpace(src) == "" || strings.TrimSpace(dst) == "" {
			return nil, fmt.Errorf("type_overrides entries must map a type name to a type name")
		}
	}
	cfg.MSSQL.Schema = strings.TrimSpace(cfg.MSSQL.Schema)
	if cfg.MSSQL.Schema == "" {
		cfg.MSSQL.Schema = "dbo"
	}

	return cfg, nil
}
