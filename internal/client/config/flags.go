package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/alumniauth/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string    base URL of the API server
//	-x string    route prefix of the auth routes
//	-t duration  per-request timeout
func parseFlags(cfg *Config, args []string) error {
	// Filter args to include only those handled here.
	args = flagx.FilterArgs(args, []string{"-a", "-x", "-t"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "API server base URL")
	fs.StringVar(&cfg.RoutePrefix, "x", cfg.RoutePrefix, "route prefix")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
