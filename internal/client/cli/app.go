package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/alumniauth/internal/client/client"
	"github.com/dmitrijs2005/alumniauth/internal/client/config"
	"github.com/dmitrijs2005/alumniauth/internal/logging"
)

// AuthAPI is the part of client.HTTPClient the commands use.
type AuthAPI interface {
	Signup(ctx context.Context, fullName, email, password string) error
	Login(ctx context.Context, email, password string) error
	Refresh(ctx context.Context) error
	Profile(ctx context.Context) (*client.Profile, error)
	Ping(ctx context.Context) error
	DatabaseStatus(ctx context.Context) (*client.DBStatus, error)
	Logout()
	LoggedIn() bool
}

type App struct {
	config *config.Config
	api    AuthAPI
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer
	email  string
}

func NewApp(c *config.Config) *App {
	api := client.NewHTTPClient(c.ServerURL, c.RoutePrefix, c.RequestTimeout)
	return newApp(c, api, os.Stdin, os.Stdout, logging.NewWithWriter(logging.EnvLocal, os.Stderr))
}

func newApp(c *config.Config, api AuthAPI, in io.Reader, out io.Writer, l logging.Logger) *App {
	return &App{
		config: c,
		api:    api,
		logger: l.With("module", "cli"),
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) status() string {
	if a.email == "" || !a.api.LoggedIn() {
		return ""
	}
	return "(" + a.email + ") "
}

// Run checks the server is reachable and then serves the REPL until the
// user exits or input ends.
func (a *App) Run(ctx context.Context) {
	printf(a.out, "alumniauth CLI, server %s (type 'help' for commands)\n", a.config.ServerURL)

	if err := a.api.Ping(ctx); err != nil {
		a.logger.Warn(ctx, "server is not reachable", "url", a.config.ServerURL, "error", err)
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
}
