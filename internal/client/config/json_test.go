package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	dir := t.TempDir()

	t.Run("loads values", func(t *testing.T) {
		p := writeTempJSON(t, dir, "full.json", map[string]any{
			"server_url": "http://www.example:9000",
			"timeout":    "3s",
		})
		cfg, err := LoadConfig(p)
		require.NoError(t, err)
		assert.Equal(t, "http://www.example:9000", cfg.ServerURL)
		assert.Equal(t, 3*time.Second, cfg.Timeout)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		p := writeTempJSON(t, dir, "partial.json", map[string]any{"timeout": 1500})
		cfg, err := LoadConfig(p)
		require.NoError(t, err)
		assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerURL)
		assert.Equal(t, 1500*time.Millisecond, cfg.Timeout)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		_, err := LoadConfig(bad)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "nope.json"))
		assert.Error(t, err)
	})
}
