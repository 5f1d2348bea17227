// Package cli provides the interactive alumniauth command-line client.
//
// It wires configuration and the HTTP API client into a small REPL:
// signup, login, profile, refresh, status and logout. Passwords are read
// from the terminal without echo and wiped after use.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
