// Package config reads server settings from the environment (optionally
// primed by a .env file) with command line flags taking precedence.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Data sources selectable with DATA_SOURCE.
const (
	SourceStatic = "static"
	SourceSQLite = "sqlite"
)

type Config struct {
	Port string
	// DataSource is SourceStatic or SourceSQLite.
	DataSource  string
	DBPath      string
	DefaultLang string
	LogLevel    slog.Level
}

// Addr is the listen address.
func (c Config) Addr() string { return ":" + c.Port }

func defaults() Config {
	return Config{
		Port:        "8080",
		DataSource:  SourceStatic,
		DBPath:      ":memory:",
		DefaultLang: "jp",
		LogLevel:    slog.LevelInfo,
	}
}

// LoadDotEnv loads .env into the process environment. A missing file is
// logged and otherwise ignored.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}
}

// Load resolves the configuration from getenv and the command line args
// (without the program name). pflag.ErrHelp is returned for --help.
func Load(args []string, getenv func(string) string) (Config, error) {
	cfg := defaults()
	if getenv == nil {
		getenv = os.Getenv
	}
	level := cfg.LogLevel.String()
	envString(getenv, "PORT", &cfg.Port)
	envString(getenv, "DATA_SOURCE", &cfg.DataSource)
	envString(getenv, "DB_PATH", &cfg.DBPath)
	envString(getenv, "DEFAULT_LANG", &cfg.DefaultLang)
	envString(getenv, "LOG_LEVEL", &level)

	fs := pflag.NewFlagSet("server", pflag.ContinueOnError)
	fs.StringVarP(&cfg.Port, "port", "p", cfg.Port, "HTTP listen port (PORT)")
	fs.StringVar(&cfg.DataSource, "data-source", cfg.DataSource, "static or sqlite (DATA_SOURCE)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path for the sqlite source (DB_PATH)")
	fs.StringVar(&cfg.DefaultLang, "lang", cfg.DefaultLang, "language when the request names none (DEFAULT_LANG)")
	fs.StringVar(&level, "log-level", level, "debug, info, warn or error (LOG_LEVEL)")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return cfg, fmt.Errorf("log level %q: %w", level, err)
	}
	cfg.DataSource = strings.ToLower(cfg.DataSource)
	switch cfg.DataSource {
	case SourceStatic, SourceSQLite:
	default:
		return cfg, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}
	if cfg.Port == "" {
		return cfg, fmt.Errorf("port must not be empty")
	}
	return cfg, nil
}

func envString(getenv func(string) string, key string, dst *string) {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		*dst = v
	}
}
