package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/placeholder/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. timeout is
// a duration string like "5s" or integer milliseconds.
type JsonConfig struct {
	ServerURL string          `json:"server_url"`
	Timeout   *timex.Duration `json:"timeout"`
}

// parseJson overlays cfg with values from the JSON file at path. Empty
// fields keep their current value.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.Timeout != nil {
		cfg.Timeout = jc.Timeout.Duration
	}
	return nil
}
