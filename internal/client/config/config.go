package config

import "time"

// Config holds runtime settings for the CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API.
//   - Timeout: per-request timeout.
type Config struct {
	ServerURL string
	Timeout   time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.Timeout = 10 * time.Second
}

// LoadConfig constructs a Config from defaults overlaid with the JSON file
// at path, if path is not empty. Command-line flags are applied by the
// caller afterwards.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}
