package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *Config
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{
				"-e", "prod", "-p", "9000", "-x", "/api/users", "-m", "memory", "-d", "db",
				"-s", "access", "-r", "refresh", "-t", "5m", "-T", "72h", "-b", "12",
			},
			expected: &Config{
				Env:             "prod",
				Port:            9000,
				RoutePrefix:     "/api/users",
				StorageDriver:   StorageMemory,
				DatabaseDSN:     "db",
				AccessSecret:    "access",
				RefreshSecret:   "refresh",
				AccessTokenTTL:  5 * time.Minute,
				RefreshTokenTTL: 72 * time.Hour,
				BcryptCost:      12,
				ShutdownTimeout: 10 * time.Second,
			},
		},
		{
			name: "config flag and unknown flags are ignored",
			args: []string{"-c", "cfg.json", "-v", "-p", "3100"},
			expected: func() *Config {
				c := defaults()
				c.Port = 3100
				return c
			}(),
		},
		{
			name:    "bad duration",
			args:    []string{"-t", "soon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			err := parseFlags(c, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, c))
		})
	}
}
