// Package config loads runtime configuration for the CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c / --config.
//  3. Command-line flags (-a / --address, --timeout), applied by the
//     command layer, which override earlier values.
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "timeout": "10s"
//	}
package config
