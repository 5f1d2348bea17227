// Package config loads runtime configuration for the alumniauth CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment: ALUMNI_SERVER_URL, ALUMNI_ROUTE_PREFIX, ALUMNI_REQUEST_TIMEOUT.
//  4. Command-line flags -a, -x and -t, which override earlier values.
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:3000",
//	  "route_prefix": "/api/users",
//	  "request_timeout": "10s"
//	}
package config
