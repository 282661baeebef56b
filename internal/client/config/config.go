// Package config holds runtime settings for the StaffDesk CLI.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the CLI client.
//
// Fields:
//   - ServerBaseURL: base URL of the backend API, including the /api prefix.
//   - RequestTimeout: per-request HTTP timeout.
//   - TokenFile: path of the persisted session token.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	TokenFile      string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults. The token lives under the
// user config dir so it survives restarts, like the original client's
// localStorage slot.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080/api"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"

	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	c.TokenFile = filepath.Join(dir, "staffdesk", "token")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
