package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the alumniauth CLI.
//
// ServerURL is the base URL of the API, without the route prefix.
// RoutePrefix is prepended to the auth routes and must match the server's.
type Config struct {
	ServerURL      string        `env:"ALUMNI_SERVER_URL"`
	RoutePrefix    string        `env:"ALUMNI_ROUTE_PREFIX"`
	RequestTimeout time.Duration `env:"ALUMNI_REQUEST_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:3000"
	c.RoutePrefix = ""
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
