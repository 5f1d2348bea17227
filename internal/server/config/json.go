package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/alumniauth/internal/flagx"
	"github.com/dmitrijs2005/alumniauth/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// strings such as "15m" (see timex.Duration). Zero values mean "not set".
type JsonConfig struct {
	Env             string         `json:"env"`
	Port            int            `json:"port"`
	RoutePrefix     string         `json:"route_prefix"`
	StorageDriver   string         `json:"storage_driver"`
	DatabaseDSN     string         `json:"database_dsn"`
	AccessSecret    string         `json:"jwt_secret"`
	RefreshSecret   string         `json:"jwt_refresh_secret"`
	AccessTokenTTL  timex.Duration `json:"access_token_ttl"`
	RefreshTokenTTL timex.Duration `json:"refresh_token_ttl"`
	BcryptCost      int            `json:"bcrypt_cost"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
}

// parseJSON overlays the file named by -c/-config in args, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.Env, c.Env)
	setString(&cfg.RoutePrefix, c.RoutePrefix)
	setString(&cfg.StorageDriver, c.StorageDriver)
	setString(&cfg.DatabaseDSN, c.DatabaseDSN)
	setString(&cfg.AccessSecret, c.AccessSecret)
	setString(&cfg.RefreshSecret, c.RefreshSecret)

	if c.Port != 0 {
		cfg.Port = c.Port
	}
	if c.BcryptCost != 0 {
		cfg.BcryptCost = c.BcryptCost
	}
	if c.AccessTokenTTL.Duration != 0 {
		cfg.AccessTokenTTL = c.AccessTokenTTL.Duration
	}
	if c.RefreshTokenTTL.Duration != 0 {
		cfg.RefreshTokenTTL = c.RefreshTokenTTL.Duration
	}
	if c.ShutdownTimeout.Duration != 0 {
		cfg.ShutdownTimeout = c.ShutdownTimeout.Duration
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
