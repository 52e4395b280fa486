package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/placeholder/internal/flagx"
	"github.com/dmitrijs2005/placeholder/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. token_ttl accepts a
// duration string ("1h") or integer milliseconds. Absent fields leave the
// current value untouched.
type JsonConfig struct {
	EndpointAddrHTTP *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN      *string         `json:"database_dsn"`
	SecretKey        *string         `json:"secret_key"`
	TokenTTL         *timex.Duration `json:"token_ttl"`
	BcryptCost       *int            `json:"bcrypt_cost"`
	LogLevel         *string         `json:"log_level"`
}

// parseJson overlays values from the file named by -c / -config, if any.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFilePath(args)

	// nothing to load
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setIf(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIf(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.SecretKey, c.SecretKey)
	setIf(&config.BcryptCost, c.BcryptCost)
	setIf(&config.LogLevel, c.LogLevel)
	if c.TokenTTL != nil {
		config.TokenTTL = c.TokenTTL.Duration
	}
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
