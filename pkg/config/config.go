// Package config loads persistent settings from the user's configuration
// file. Every value can be overridden by a flag or environment variable;
// the file only supplies defaults.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultCacheTTL bounds how long cached registry responses are reused.
const DefaultCacheTTL = time.Hour

// DefaultOutput is the report path written when no override is given.
const DefaultOutput = "dependency_report.html"

// Config holds the settings read from the configuration file.
type Config struct {
	// Token is the GitHub personal access token used for API calls and
	// embedded in rendered reports.
	Token string `toml:"token"`
	// Workers caps concurrent repository scans. Zero means one worker
	// per CPU.
	Workers int `toml:"workers"`
	// CacheTTLMinutes controls registry cache expiry. Zero keeps the
	// default.
	CacheTTLMinutes int `toml:"cache_ttl_minutes"`
	// Output is the report file path. Empty keeps the default.
	Output string `toml:"output"`
}

// CacheTTL returns the configured cache expiry, falling back to the
// default when unset.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLMinutes <= 0 {
		return DefaultCacheTTL
	}
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// Path returns the configuration file location, honoring
// XDG_CONFIG_HOME.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "depradar", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "depradar", "config.toml"), nil
}

// Load reads the configuration file at path. A missing file yields the
// default configuration without error; a malformed file is an error.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, err
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	return cfg, nil
}

// LoadDefault loads the configuration from its standard location.
func LoadDefault() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{Output: DefaultOutput}, nil
	}
	return Load(path)
}
