package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:3000", c.ServerURL)
	assert.Equal(t, "", c.RoutePrefix)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_url": "http://json:3000",
		"route_prefix": "/json",
		"request_timeout": "3s"
	}`), 0o600))

	t.Setenv("ALUMNI_ROUTE_PREFIX", "/api/users")

	got, err := load([]string{"-c", path, "-t", "5s", "-unknown", "x"})
	require.NoError(t, err)

	want := &Config{
		ServerURL:      "http://json:3000",
		RoutePrefix:    "/api/users",
		RequestTimeout: 5 * time.Second,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	t.Setenv("ALUMNI_SERVER_URL", "http://env:3000")

	got, err := load([]string{"-a", "http://flag:4000"})
	require.NoError(t, err)
	assert.Equal(t, "http://flag:4000", got.ServerURL)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"-config", filepath.Join(t.TempDir(), "nope.json")}},
		{"bad duration", []string{"-t", "soon"}},
		{"bad prefix", []string{"-x", "api"}},
		{"bad url", []string{"-a", "not a url"}},
		{"zero timeout", []string{"-t", "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_url":`), 0o600))

	_, err := load([]string{"-c", path})
	assert.Error(t, err)
}
