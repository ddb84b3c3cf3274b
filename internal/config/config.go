// Package config loads server configuration from an optional YAML file
// and CHORECAST_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config keys. Environment overrides use the CHORECAST_ prefix with
// dots replaced by underscores, e.g. CHORECAST_DB_PATH.
const (
	keyAddr      = "addr"
	keyDBPath    = "db_path"
	keyJWTSecret = "jwt_secret"
	keyLogLevel  = "log.level"
	keyLogFormat = "log.format"
)

// Config holds the server configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// DBPath is the SQLite database file path. One database per household.
	DBPath string

	// JWTSecret is the HS256 secret shared with the identity collaborator.
	JWTSecret string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFormat is "text" (colored, for development) or "json".
	LogFormat string
}

// Load reads configuration from the given file (optional; empty path
// skips the file entirely) with environment variables taking precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault(keyAddr, ":8080")
	v.SetDefault(keyDBPath, "./data/chorecast.db")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, "text")

	v.SetEnvPrefix("CHORECAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Addr:      v.GetString(keyAddr),
		DBPath:    v.GetString(keyDBPath),
		JWTSecret: v.GetString(keyJWTSecret),
		LogLevel:  v.GetString(keyLogLevel),
		LogFormat: v.GetString(keyLogFormat),
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required (set CHORECAST_JWT_SECRET)")
	}
	return cfg, nil
}
