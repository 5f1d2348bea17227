package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/alumniauth/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-e string    environment: local, dev or prod
//	-p int       HTTP port
//	-x string    route prefix, e.g. "/api/users"
//	-m string    storage driver: postgres or memory
//	-d string    PostgreSQL DSN
//	-s string    access token secret
//	-r string    refresh token secret
//	-t duration  access token lifetime, e.g. "1h"
//	-T duration  refresh token lifetime, e.g. "168h"
//	-b int       bcrypt cost
//
// os.Args is filtered first with flagx.FilterArgs so -c/-config and unknown
// flags do not break parsing.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-e", "-p", "-x", "-m", "-d", "-s", "-r", "-t", "-T", "-b"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Env, "e", cfg.Env, "environment (local, dev, prod)")
	fs.IntVar(&cfg.Port, "p", cfg.Port, "HTTP port")
	fs.StringVar(&cfg.RoutePrefix, "x", cfg.RoutePrefix, "route prefix")
	fs.StringVar(&cfg.StorageDriver, "m", cfg.StorageDriver, "storage driver (postgres, memory)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.AccessSecret, "s", cfg.AccessSecret, "access token secret")
	fs.StringVar(&cfg.RefreshSecret, "r", cfg.RefreshSecret, "refresh token secret")
	fs.DurationVar(&cfg.AccessTokenTTL, "t", cfg.AccessTokenTTL, "access token lifetime")
	fs.DurationVar(&cfg.RefreshTokenTTL, "T", cfg.RefreshTokenTTL, "refresh token lifetime")
	fs.IntVar(&cfg.BcryptCost, "b", cfg.BcryptCost, "bcrypt cost")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	return nil
}
