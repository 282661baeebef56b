package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/staffdesk/staffdesk/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. The timeout is
// given as a duration string ("10s"); other fields map one to one onto the
// runtime Config.
type jsonConfig struct {
	ServerBaseURL  string `json:"server_base_url"`
	RequestTimeout string `json:"request_timeout"`
	TokenFile      string `json:"token_file"`
	LogLevel       string `json:"log_level"`
}

// parseJSON overlays cfg with values from the JSON file named by the -c or
// -config flag. When no file is named, nothing happens. Read and unmarshal
// errors panic; the config is loaded once at startup and a broken file should
// stop the program. Empty fields leave the current value in place so partial
// files work.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.RequestTimeout != "" {
		d, err := time.ParseDuration(jc.RequestTimeout)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if jc.TokenFile != "" {
		cfg.TokenFile = jc.TokenFile
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
