package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/alumniauth/internal/flagx"
	"github.com/dmitrijs2005/alumniauth/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals
// may be strings like "3s" or integer nanoseconds.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	RoutePrefix    string         `json:"route_prefix"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJSON overlays Config with the non-empty values of the JSON file named
// by -c or -config.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RoutePrefix != "" {
		cfg.RoutePrefix = jc.RoutePrefix
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}
