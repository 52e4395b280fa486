package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "flag with equals",
			args:         []string{"-config=alt.json", "-a", "localhost"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "next dash-prefixed token is not a value",
			args:         []string{"-t", "-s", "key"},
			allowedFlags: []string{"-t", "-s"},
			want:         []string{"-t", "-s", "key"},
		},
		{
			name:         "value containing equals in separate form",
			args:         []string{"-d", "postgres://u:p@h/db?sslmode=disable"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d", "postgres://u:p@h/db?sslmode=disable"},
		},
		{
			name:         "empty args",
			args:         nil,
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFilePath(t *testing.T) {
	assert.Equal(t, "/path/short.json", ConfigFilePath([]string{"-c", "/path/short.json"}))
	assert.Equal(t, "/path/long.json", ConfigFilePath([]string{"-a", ":8080", "-config", "/path/long.json"}))
	assert.Equal(t, "/path/2.json", ConfigFilePath([]string{"-c", "/path/1.json", "-config=/path/2.json"}))
	assert.Empty(t, ConfigFilePath([]string{"-x", "1"}))
}
